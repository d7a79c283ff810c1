package cmd

import (
	"time"

	"github.com/mj1618/focusd/internal/output"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/spf13/cobra"
)

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List connected displays",
	Long:  "List connected displays with their bounds, plus the current pointer position.",
	RunE:  runDisplays,
}

func init() {
	rootCmd.AddCommand(displaysCmd)
}

func runDisplays(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	displays, err := provider.Screens.ListDisplays()
	if err != nil {
		return err
	}

	result := output.DisplaysResult{
		TS:       time.Now().Unix(),
		Displays: displays,
	}
	if pos, err := provider.Pointer.Position(); err == nil {
		result.Pointer = &pos
	}
	return output.Print(result)
}
