package discord

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Registered slash definitions are hashed per guild and cached on disk so
// a restart only re-registers commands that actually changed.

func guildCachePath(guildID string) string {
	return filepath.Join("data", "commands", guildID+".json")
}

// loadGuildCommandHashes reads the cached name->hash map for a guild.
// A missing or unreadable cache means every command looks changed, which
// is safe: registration is idempotent, just slower.
func loadGuildCommandHashes(guildID string) map[string]string {
	hashes := make(map[string]string)
	raw, err := os.ReadFile(guildCachePath(guildID))
	if err != nil {
		return hashes
	}
	if err := json.Unmarshal(raw, &hashes); err != nil {
		log.Printf("[WARN] [%s] Corrupt command cache, rebuilding: %v", guildID, err)
		return make(map[string]string)
	}
	return hashes
}

func saveGuildCommandHashes(guildID string, hashes map[string]string) {
	path := guildCachePath(guildID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("[WARN] [%s] Failed to create command cache dir: %v", guildID, err)
		return
	}
	raw, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		log.Printf("[WARN] [%s] Failed to write command cache: %v", guildID, err)
	}
}
