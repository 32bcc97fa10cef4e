package config

import "strings"

// Normalize applies post-validation normalization.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Extensions are compared against lower-cased filepath.Ext output.
	for i, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Extensions[i] = ext
	}

	cfg.ExitKeyword = strings.TrimSpace(cfg.ExitKeyword)
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
}
