package command

import (
	"github.com/FrostlineTech/Marcus/internal/config"
	"github.com/FrostlineTech/Marcus/internal/mood"
	"github.com/FrostlineTech/Marcus/internal/persona"
	"github.com/FrostlineTech/Marcus/internal/rage"
	"github.com/FrostlineTech/Marcus/internal/speech"
	"github.com/FrostlineTech/Marcus/pkg/jobmgr"
)

// Deps bundles the character state machines commands draw on. The runtime
// builds one set at startup and threads it through every context.
type Deps struct {
	Config   *config.Config
	Mood     *mood.Engine
	Rage     *rage.Tracker
	Selector *persona.Selector
	Composer *speech.Composer
	Jobs     *jobmgr.Manager
}
