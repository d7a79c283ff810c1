package cmd

import (
	"time"

	"github.com/mj1618/focusd/internal/output"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List on-screen windows",
	Long:  "List on-screen windows front-to-back with their app name, title, PID, bounds, and display.",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().String("app", "", "Filter windows by app name")
	windowsCmd.Flags().Int("pid", 0, "Filter windows by PID")
	windowsCmd.Flags().Int("display", 0, "Filter windows by display ID")
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	appName, _ := cmd.Flags().GetString("app")
	pid, _ := cmd.Flags().GetInt("pid")
	displayID, _ := cmd.Flags().GetInt("display")

	windows, err := provider.WindowManager.ListWindows(platform.ListOptions{
		App:       appName,
		PID:       pid,
		DisplayID: displayID,
	})
	if err != nil {
		return err
	}

	return output.Print(output.WindowsResult{
		TS:      time.Now().Unix(),
		Count:   len(windows),
		Windows: windows,
	})
}
