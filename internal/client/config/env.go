package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/dmitrijs2005/noteapp/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv loads the dotenv file (-e / -env-file, else ./.env when present)
// into the process environment and overlays cfg with the variables named in
// its env tags. Variables already set in the environment win over the file.
func parseEnv(cfg *Config, args []string) {
	loadDotenv(args)

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}

func loadDotenv(args []string) {
	path := flagx.EnvFilePath(args)
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return
		}
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}
