package cmd

import (
	"time"

	"github.com/mj1618/focusd/internal/output"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/spf13/cobra"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Check OS permissions required by focusd",
	Long: `Check whether focusd has the accessibility permission it needs to observe
mouse events and raise windows. Use --prompt to trigger the OS grant dialog.`,
	RunE: runPermissions,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
	permissionsCmd.Flags().Bool("prompt", false, "Trigger the OS permission prompt if not granted")
}

// permissionsResult is the output of the `permissions` command.
type permissionsResult struct {
	TS            int64  `yaml:"ts"            json:"ts"`
	Accessibility bool   `yaml:"accessibility" json:"accessibility"`
	Detail        string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

func runPermissions(cmd *cobra.Command, args []string) error {
	if platform.CheckPermissionsFunc == nil {
		return platform.ErrUnsupported
	}

	if prompt, _ := cmd.Flags().GetBool("prompt"); prompt && platform.RequestPermissionsFunc != nil {
		platform.RequestPermissionsFunc()
	}

	result := permissionsResult{TS: time.Now().Unix(), Accessibility: true}
	if err := platform.CheckPermissionsFunc(); err != nil {
		result.Accessibility = false
		result.Detail = err.Error()
	}
	return output.Print(result)
}
