package config

import "time"

// Config represents the parex configuration file structure
type Config struct {
	// Jobs is a map of job names to their command presets
	Jobs map[string]JobConfig `yaml:"jobs,omitempty" json:"jobs,omitempty"`

	// Defaults contains default settings for runs
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// JobConfig represents a named preset of commands to run concurrently
type JobConfig struct {
	// Description is a short human-readable summary of the job
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Commands are the shell commands the job runs
	Commands []string `yaml:"commands" json:"commands"`

	// Workers overrides the default pool capacity for this job
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	// Timeout overrides the default per-command timeout for this job
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// Isolated runs the job's commands in isolated mode
	Isolated bool `yaml:"isolated,omitempty" json:"isolated,omitempty"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Workers is the pool capacity used when a run does not set one
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	// Timeout applies to each command in a run
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`

	// Shell is the shell used to run commands
	Shell string `yaml:"shell,omitempty" json:"shell,omitempty"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`
}
