package ai

import (
	"fmt"

	"github.com/FrostlineTech/Marcus/internal/config"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single generation call. Temperature varies with mood, the
// rest stays fixed.
type Options struct {
	Temperature float64
	MaxTokens   int
}

func DefaultOptions() Options {
	return Options{Temperature: 0.7, MaxTokens: 150}
}

type Provider interface {
	Generate(messages []Message, opts Options) (string, error)
}

func DefaultProvider(cfg *config.Config) Provider {
	switch cfg.AIProvider {
	case "pollinations", "":
		return NewPollinationsProvider(cfg.AIModel)
	default:
		panic(fmt.Sprintf("unsupported AI_PROVIDER: %s", cfg.AIProvider))
	}
}
