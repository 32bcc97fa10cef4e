package config

import (
	"fmt"
	"strings"
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if len(cfg.Extensions) == 0 {
		return fmt.Errorf("extensions: at least one extension is required")
	}
	for _, ext := range cfg.Extensions {
		if strings.TrimSpace(ext) == "" || strings.TrimPrefix(ext, ".") == "" {
			return fmt.Errorf("extensions: invalid extension %q", ext)
		}
	}

	if strings.TrimSpace(cfg.ExitKeyword) == "" {
		return fmt.Errorf("exit_keyword must not be empty")
	}

	cols := []struct {
		name string
		pos  int
	}{
		{"name", cfg.Columns.Name},
		{"interface_selector", cfg.Columns.InterfaceSelector},
		{"port_range", cfg.Columns.PortRange},
		{"policy_group", cfg.Columns.PolicyGroup},
	}
	seen := make(map[int]string)
	for _, c := range cols {
		if c.pos < 1 {
			return fmt.Errorf("columns.%s: position must be >= 1, got %d", c.name, c.pos)
		}
		if other, ok := seen[c.pos]; ok {
			return fmt.Errorf("columns.%s: position %d already used by columns.%s", c.name, c.pos, other)
		}
		seen[c.pos] = c.name
	}

	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}

	return nil
}
