package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version      int          `yaml:"version"`
	Server       ServerConfig `yaml:"server"`
	ONOS         ONOSConfig   `yaml:"onos"`
	PollInterval Duration     `yaml:"poll_interval" validate:"gt=0"`

	// Controllers is the display order of the controller status bar.
	// Empty means registry encounter order.
	Controllers []string `yaml:"controllers,omitempty" validate:"dive,required"`

	// SnapshotFile replays a YAML fixture instead of polling ONOS
	SnapshotFile string `yaml:"snapshot_file,omitempty" validate:"omitempty,file"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// ONOSConfig describes the REST endpoints polled for snapshots
type ONOSConfig struct {
	URL             string   `yaml:"url" validate:"required,url"`
	SwitchesPath    string   `yaml:"switches_path" validate:"required,startswith=/"`
	LinksPath       string   `yaml:"links_path" validate:"required,startswith=/"`
	RegistryPath    string   `yaml:"registry_path" validate:"required,startswith=/"`
	ControllersPath string   `yaml:"controllers_path" validate:"omitempty,startswith=/"`
	Timeout         Duration `yaml:"timeout" validate:"gt=0"`

	// DisableControllerStatus skips polling ControllersPath; liveness is
	// then inferred from registry membership.
	DisableControllerStatus bool `yaml:"disable_controller_status,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
