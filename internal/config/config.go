package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "ifprofile.yaml"

type Config struct {
	Extensions  []string      `yaml:"extensions"`
	ExitKeyword string        `yaml:"exit_keyword"`
	OutputDir   string        `yaml:"output_dir"` // empty: next to the input files
	Columns     Columns       `yaml:"columns"`
	CSV         CSVConfig     `yaml:"csv"`
	Logging     LoggingConfig `yaml:"logging"`
}

// Columns holds 1-based worksheet column positions.
type Columns struct {
	Name              int `yaml:"name"`
	InterfaceSelector int `yaml:"interface_selector"`
	PortRange         int `yaml:"port_range"`
	PolicyGroup       int `yaml:"policy_group"`
}

type CSVConfig struct {
	BOM  bool `yaml:"bom"`
	CRLF bool `yaml:"crlf"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty disables logging
}

func DefaultConfig() *Config {
	return &Config{
		Extensions:  []string{".xlsx"},
		ExitKeyword: "exit",
		Columns: Columns{
			Name:              1,
			InterfaceSelector: 2,
			PortRange:         3,
			PolicyGroup:       4,
		},
		CSV: CSVConfig{
			BOM: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "ifprofile.log",
		},
	}
}

// Load reads the YAML config at path on top of the defaults. A missing file
// yields the defaults. Variables from a .env file in the working directory and
// the process environment are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// .env is optional
	_ = godotenv.Load()

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("IFPROFILE_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if file, ok := os.LookupEnv("IFPROFILE_LOG_FILE"); ok {
		c.Logging.File = file
	}
	if level := os.Getenv("IFPROFILE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if kw := os.Getenv("IFPROFILE_EXIT_KEYWORD"); kw != "" {
		c.ExitKeyword = kw
	}
}

// IsExitKeyword reports whether input asks to leave the prompt.
func (c *Config) IsExitKeyword(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), c.ExitKeyword)
}
