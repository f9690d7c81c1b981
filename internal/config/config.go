package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken          string   `env:"DISCORD_TOKEN,required"`
	StoragePath           string   `env:"STORAGE_PATH" envDefault:"datastore.json"`
	AIProvider            string   `env:"AI_PROVIDER" envDefault:"pollinations"`
	AIModel               string   `env:"AI_MODEL" envDefault:"openai"`
	DeveloperID           string   `env:"DEVELOPER_ID"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal("[ERR] Failed to parse environment: ", err)
	}
	return cfg
}
