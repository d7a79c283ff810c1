package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mj1618/focusd/internal/platform"
	"github.com/spf13/cobra"
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Watch pointer display crossings and stream events as JSONL",
	Long: `Continuously poll the pointer position and emit an event each time it
crosses onto a different display. One JSON object per line; nothing is
emitted while the pointer stays on the same display.

This shows exactly the signal the daemon's poll fallback sees, which makes
it useful for verifying display geometry before running the daemon.

Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop observing.`,
	RunE: runObserve,
}

func init() {
	rootCmd.AddCommand(observeCmd)
	observeCmd.Flags().Int("interval", 100, "Polling interval in milliseconds")
	observeCmd.Flags().Int("duration", 0, "Max seconds to observe (0 = until Ctrl+C)")
	observeCmd.Flags().Bool("moves", false, "Also emit an event for every pointer position change")
}

func runObserve(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	intervalMs, _ := cmd.Flags().GetInt("interval")
	durationSec, _ := cmd.Flags().GetInt("duration")
	moves, _ := cmd.Flags().GetBool("moves")

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	interval := time.Duration(intervalMs) * time.Millisecond
	var deadline time.Time
	if durationSec > 0 {
		deadline = time.Now().Add(time.Duration(durationSec) * time.Second)
	}
	start := time.Now()

	// Baseline: where the pointer is now.
	pos, err := provider.Pointer.Position()
	if err != nil {
		return fmt.Errorf("initial pointer read failed: %w", err)
	}
	displays, err := provider.Screens.ListDisplays()
	if err != nil {
		return fmt.Errorf("listing displays: %w", err)
	}
	lastDisplayID := 0
	if d, err := provider.Screens.DisplayAt(pos); err == nil && d != nil {
		lastDisplayID = d.ID
	}
	lastPos := pos

	enc.Encode(map[string]interface{}{
		"type":     "snapshot",
		"ts":       time.Now().Unix(),
		"displays": len(displays),
		"display":  lastDisplayID,
		"pos":      pos,
	})

	eventCount := 0
	for {
		if durationSec > 0 && time.Now().After(deadline) {
			break
		}
		time.Sleep(interval)

		pos, err := provider.Pointer.Position()
		if err != nil {
			enc.Encode(map[string]interface{}{
				"type":  "error",
				"ts":    time.Now().Unix(),
				"error": err.Error(),
			})
			continue
		}

		if moves && pos != lastPos {
			enc.Encode(map[string]interface{}{
				"type": "move",
				"ts":   time.Now().Unix(),
				"pos":  pos,
			})
			eventCount++
		}
		lastPos = pos

		d, err := provider.Screens.DisplayAt(pos)
		if err != nil || d == nil {
			// Pointer between displays or enumeration hiccup; keep the
			// last known display.
			continue
		}
		if d.ID != lastDisplayID {
			enc.Encode(map[string]interface{}{
				"type": "display_change",
				"ts":   time.Now().Unix(),
				"from": lastDisplayID,
				"to":   d.ID,
				"pos":  pos,
			})
			lastDisplayID = d.ID
			eventCount++
		}
	}

	elapsed := time.Since(start)
	enc.Encode(map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", elapsed.Seconds()),
		"events":  eventCount,
	})
	return nil
}
