// Package version carries build identity. BuildDate and GoVersion are set
// through -ldflags at release time.
package version

var (
	AppName        = "Marcus"
	AppFullName    = "Marcus the Worm"
	AppDescription = "A cryptic worm entity from VRChat, loose on Discord. He has moods, he holds grudges, and he is still looking for Jimbo James."
	BuildDate      = "unknown"
	GoVersion      = "unknown"
)
