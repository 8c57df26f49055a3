package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocPath       string // a single .org file or a directory of them
	ManifestsPath string // .hcl manifests + compiled-in handlers

	LogFormat string
	LogLevel  string

	// ShowWarnings surfaces non-fatal resolution warnings in logs and
	// results.
	ShowWarnings bool

	// NoDecorate suppresses the provenance comment above spliced content.
	NoDecorate bool

	// Write persists processed documents back to disk; otherwise the run
	// is a dry pass that only reports what would change.
	Write bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocPath == "" {
		return nil, errors.New("DocPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
