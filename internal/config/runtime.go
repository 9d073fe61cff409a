package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuntimeConfig is the decoded form of the optional runtime config (spec
// section 6.3). It is parsed with yaml.v3, which accepts the JSON the
// spec's wire format names (JSON is a YAML subset) while keeping the
// teacher's YAML-config dependency genuinely exercised.
type RuntimeConfig struct {
	Basic struct {
		VisFrame string `yaml:"VisFrame"`
	} `yaml:"Basic"`
	VisFrame struct {
		TargetNodeList []string `yaml:"TargetNodeList"`
		LogInfoPath    string   `yaml:"LogInfoPath"`
		LogFramesPath  string   `yaml:"LogFramesPath"`
	} `yaml:"VisFrame"`
}

// FrameRecorderEnabled reports whether the runtime config turns on the
// optional frame recorder.
func (c *RuntimeConfig) FrameRecorderEnabled() bool {
	return c != nil && c.Basic.VisFrame == "on"
}

// LoadRuntimeConfig reads and decodes a runtime config file. A non-nil,
// zero-valued RuntimeConfig is returned for an empty path: the kernel reads nothing
// from this file beyond the VisFrame toggle, so its absence is not an
// error.
func LoadRuntimeConfig(path string) (*RuntimeConfig, error) {
	if path == "" {
		return &RuntimeConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading runtime config: %w", err)
	}
	var cfg RuntimeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing runtime config: %w", err)
	}
	return &cfg, nil
}
