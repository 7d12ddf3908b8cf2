// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// EnvPrefix is prepended to the name of every environment variable read by the tool.
	EnvPrefix = "CARDIOSTAT_"

	// DotEnvFile is the file looked up in the working directory for additional variables.
	DotEnvFile = ".env"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")

	logLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR"}
)

// Config holds the environment driven defaults of the commands.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	InputPath  string `env:"INPUT_PATH" envDefault:"project_heart_disease.csv"`
	Sheet      string `env:"SHEET"`
	ExportPath string `env:"EXPORT_PATH" envDefault:"family_heart_disease.json"`
}

// LoadConfig reads the configuration from the process environment and from the
// given dotenv files. Process variables win over the files, and a file listed
// first wins over the following ones; missing files are ignored.
func LoadConfig(dotEnvPaths ...string) (*Config, error) {
	environment, err := readEnvironment(dotEnvPaths)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	config, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports every invalid value of c at once.
func (c Config) Validate() error {
	errorsList := make([]string, 0)

	if !slices.Contains(logLevels, strings.ToUpper(strings.TrimSpace(c.LogLevel))) {
		errorsList = append(errorsList, fmt.Sprintf("%sLOG_LEVEL has unknown value %q", EnvPrefix, c.LogLevel))
	}
	if strings.TrimSpace(c.InputPath) == "" {
		errorsList = append(errorsList, EnvPrefix+"INPUT_PATH cannot be empty")
	}
	if strings.TrimSpace(c.ExportPath) == "" {
		errorsList = append(errorsList, EnvPrefix+"EXPORT_PATH cannot be empty")
	}

	if len(errorsList) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(errorsList, ", "))
	}
	return nil
}

func readEnvironment(dotEnvPaths []string) (map[string]string, error) {
	environment := make(map[string]string)
	for _, path := range dotEnvPaths {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		for key, value := range values {
			if _, found := environment[key]; !found {
				environment[key] = value
			}
		}
	}

	for _, variable := range os.Environ() {
		key, value, _ := strings.Cut(variable, "=")
		environment[key] = value
	}

	return environment, nil
}
