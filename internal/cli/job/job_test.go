package job

import (
	"testing"
	"time"

	"github.com/ilham-ap/parex/internal/config"
)

func TestNewJobCmd(t *testing.T) {
	cmd := NewJobCmd()

	if cmd.Use != "job" {
		t.Errorf("Use = %q, want %q", cmd.Use, "job")
	}

	subcommands := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, want := range []string{"list", "show"} {
		if !subcommands[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestBuildEntries(t *testing.T) {
	jobs := map[string]config.JobConfig{
		"checks": {
			Description: "lint and test",
			Commands:    []string{"make lint", "make test"},
			Workers:     8,
			Timeout:     time.Minute,
		},
		"deploy": {
			Commands: []string{"make deploy"},
			Isolated: true,
		},
	}

	entries := buildEntries([]string{"checks", "deploy"}, jobs)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	checks := entries[0]
	if checks.Name != "checks" {
		t.Errorf("entries[0].Name = %q, want %q", checks.Name, "checks")
	}
	if checks.Commands != 2 {
		t.Errorf("entries[0].Commands = %d, want 2", checks.Commands)
	}
	if checks.Workers != 8 {
		t.Errorf("entries[0].Workers = %d, want 8", checks.Workers)
	}
	if checks.Timeout != time.Minute {
		t.Errorf("entries[0].Timeout = %v, want 1m", checks.Timeout)
	}

	deploy := entries[1]
	if !deploy.Isolated {
		t.Error("entries[1].Isolated = false, want true")
	}
	if deploy.Description != "" {
		t.Errorf("entries[1].Description = %q, want empty", deploy.Description)
	}
}

func TestBuildEntriesEmpty(t *testing.T) {
	entries := buildEntries(nil, nil)
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestNewListCmdFlags(t *testing.T) {
	cmd := newListCmd()

	if cmd.Flags().Lookup("output") == nil {
		t.Error("list command is missing the --output flag")
	}
	if len(cmd.Aliases) == 0 || cmd.Aliases[0] != "ls" {
		t.Errorf("Aliases = %v, want [ls]", cmd.Aliases)
	}
}

func TestNewShowCmdRequiresName(t *testing.T) {
	cmd := newShowCmd()

	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("expected an error when no job name is given")
	}
	if err := cmd.Args(cmd, []string{"checks"}); err != nil {
		t.Errorf("unexpected error for one argument: %v", err)
	}
}
