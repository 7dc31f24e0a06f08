package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/ludo-technologies/codeguard/domain"
)

// DefaultProjectJSON contains the embedded default project record
//
//go:embed default_project.json
var DefaultProjectJSON string

// DefaultProjectConfig parses the embedded defaults. A fresh copy is returned
// on every call.
func DefaultProjectConfig() domain.ProjectConfig {
	var cfg domain.ProjectConfig
	if err := json.Unmarshal([]byte(DefaultProjectJSON), &cfg); err != nil {
		panic(fmt.Sprintf("invalid embedded default_project.json: %v", err))
	}
	return cfg
}
