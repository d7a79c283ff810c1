package cmd

import (
	"testing"

	"github.com/mj1618/focusd/internal/output"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"run", "windows", "displays", "layout", "permissions", "serve", "config", "observe"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_FormatFlag(t *testing.T) {
	defer func() {
		rootCmd.PersistentFlags().Set("format", "yaml")
		output.OutputFormat = output.FormatYAML
	}()

	rootCmd.PersistentFlags().Set("format", "json")
	if err := rootCmd.PersistentPreRunE(rootCmd, nil); err != nil {
		t.Fatalf("json format should be accepted: %v", err)
	}
	if output.OutputFormat != output.FormatJSON {
		t.Errorf("output format: got %s, want json", output.OutputFormat)
	}

	rootCmd.PersistentFlags().Set("format", "xml")
	if err := rootCmd.PersistentPreRunE(rootCmd, nil); err == nil {
		t.Error("unsupported format should be rejected")
	}
}
