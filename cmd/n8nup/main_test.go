package main

import (
	"testing"
	"time"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "n8nup [tag]" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "n8nup [tag]")
	}
	if !rootCmd.SilenceUsage {
		t.Error("rootCmd.SilenceUsage should be true")
	}
	if rootCmd.RunE == nil {
		t.Error("rootCmd.RunE should be set")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	if !names["status"] {
		t.Error("status subcommand not registered")
	}
}

func TestUpgradeFlagDefaults(t *testing.T) {
	grace, err := rootCmd.Flags().GetDuration("grace")
	if err != nil {
		t.Fatalf("GetDuration(grace) error = %v", err)
	}
	if grace != 10*time.Second {
		t.Errorf("grace default = %v, want %v", grace, 10*time.Second)
	}

	dryRun, err := rootCmd.Flags().GetBool("dry-run")
	if err != nil {
		t.Fatalf("GetBool(dry-run) error = %v", err)
	}
	if dryRun {
		t.Error("dry-run should default to false")
	}

	dir, err := rootCmd.Flags().GetString("project-dir")
	if err != nil {
		t.Fatalf("GetString(project-dir) error = %v", err)
	}
	if dir != "." {
		t.Errorf("project-dir default = %q, want %q", dir, ".")
	}
}

func TestStatusOutputFlag(t *testing.T) {
	flag := statusCmd.Flags().Lookup("output")
	if flag == nil {
		t.Fatal("status --output flag not registered")
	}
	if flag.DefValue != "text" {
		t.Errorf("output default = %q, want %q", flag.DefValue, "text")
	}
	if flag.Shorthand != "o" {
		t.Errorf("output shorthand = %q, want %q", flag.Shorthand, "o")
	}
}
