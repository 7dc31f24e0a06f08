package domain

import (
	"encoding/json"
	"time"
)

// ProjectConfig is the single persisted configuration record of a project root
type ProjectConfig struct {
	ProjectName  string             `json:"projectName" yaml:"projectName"`
	Repository   string             `json:"repository" yaml:"repository"`
	Language     string             `json:"language" yaml:"language"`
	Framework    string             `json:"framework" yaml:"framework"`
	ExcludePaths []string           `json:"excludePaths" yaml:"excludePaths"`
	Rules        map[string]bool    `json:"rules" yaml:"rules"`
	Thresholds   map[string]float64 `json:"thresholds" yaml:"thresholds"`
	Connected    bool               `json:"connected" yaml:"connected"`
	ConnectedAt  *time.Time         `json:"connectedAt,omitempty" yaml:"connectedAt,omitempty"`

	// Extra holds keys this version does not know about. They are written
	// back unchanged on save.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// knownProjectKeys lists the JSON keys owned by ProjectConfig
var knownProjectKeys = []string{
	"projectName", "repository", "language", "framework",
	"excludePaths", "rules", "thresholds", "connected", "connectedAt",
}

// projectConfigJSON avoids recursion into the custom (un)marshalers
type projectConfigJSON ProjectConfig

// MarshalJSON writes the known fields together with any preserved extra
// keys. When extra keys are present the output keys are sorted.
func (c ProjectConfig) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(projectConfigJSON(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(c.Extra)+len(knownProjectKeys))
	for k, v := range c.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON reads the known fields and keeps everything else in Extra
func (c *ProjectConfig) UnmarshalJSON(data []byte) error {
	var known projectConfigJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range knownProjectKeys {
		delete(all, k)
	}
	if len(all) > 0 {
		known.Extra = all
	} else {
		known.Extra = nil
	}

	*c = ProjectConfig(known)
	return nil
}

// Clone returns a deep copy so that snapshots do not alias the live record
func (c ProjectConfig) Clone() ProjectConfig {
	out := c
	if c.ExcludePaths != nil {
		out.ExcludePaths = append([]string(nil), c.ExcludePaths...)
	}
	if c.Rules != nil {
		out.Rules = make(map[string]bool, len(c.Rules))
		for k, v := range c.Rules {
			out.Rules[k] = v
		}
	}
	if c.Thresholds != nil {
		out.Thresholds = make(map[string]float64, len(c.Thresholds))
		for k, v := range c.Thresholds {
			out.Thresholds[k] = v
		}
	}
	if c.ConnectedAt != nil {
		at := *c.ConnectedAt
		out.ConnectedAt = &at
	}
	if c.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Validate checks the connected/connectedAt invariant
func (c ProjectConfig) Validate() error {
	if c.Connected && c.ConnectedAt == nil {
		return NewConfigCorruptError("connected is true but connectedAt is not set", nil)
	}
	return nil
}

// ProjectOverrides carries caller-supplied values for init. Nil or empty
// fields leave the default in place.
type ProjectOverrides struct {
	ProjectName  string
	Repository   string
	Language     string
	Framework    string
	ExcludePaths []string
	Rules        map[string]bool
	Thresholds   map[string]float64
}

// MergeProjectConfig merges overrides onto base. Scalars and the exclude
// list are replaced wholesale; rules and thresholds are merged per key.
func MergeProjectConfig(base ProjectConfig, o ProjectOverrides) ProjectConfig {
	merged := base.Clone()

	if o.ProjectName != "" {
		merged.ProjectName = o.ProjectName
	}
	if o.Repository != "" {
		merged.Repository = o.Repository
	}
	if o.Language != "" {
		merged.Language = o.Language
	}
	if o.Framework != "" {
		merged.Framework = o.Framework
	}
	if len(o.ExcludePaths) > 0 {
		merged.ExcludePaths = append([]string(nil), o.ExcludePaths...)
	}

	if len(o.Rules) > 0 && merged.Rules == nil {
		merged.Rules = make(map[string]bool, len(o.Rules))
	}
	for k, v := range o.Rules {
		merged.Rules[k] = v
	}

	if len(o.Thresholds) > 0 && merged.Thresholds == nil {
		merged.Thresholds = make(map[string]float64, len(o.Thresholds))
	}
	for k, v := range o.Thresholds {
		merged.Thresholds[k] = v
	}

	return merged
}
