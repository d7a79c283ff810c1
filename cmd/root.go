package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/focusd/internal/output"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/mj1618/focusd/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "focusd",
	Short: "Focus-follows-mouse for multi-display macOS",
	Long: `A daemon that watches the mouse cursor and keeps keyboard focus on the
display the cursor is on, so typing always goes where you are looking.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty

		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			parsed, err := logrus.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("unsupported log level: %s", level)
			}
			logrus.SetLevel(parsed)
		}
		return nil
	}
}
