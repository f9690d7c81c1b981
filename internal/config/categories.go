package config

var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"💬 Chat":         10,
	"🎭 Persona":      20,
	"😡 Rage":         30,
	"📜 Lore":         40,
}
