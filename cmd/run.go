package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/focusd/internal/config"
	"github.com/mj1618/focusd/internal/coordinator"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the focus-follows-mouse daemon",
	Long: `Start watching mouse movement and keep keyboard focus on the display the
cursor is on. Runs in the foreground until interrupted.

Signals:
  INT, TERM   stop the daemon
  HUP         reload (clears focus memory and re-initializes watchers)

The config file is watched; valid edits apply without a restart.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("config", "", "Config file path (default: "+config.DefaultPath()+")")
	runCmd.Flags().Bool("no-watch", false, "Disable config file watching")
}

func runRun(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyLogLevel(cfg)

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	log := logrus.WithField("subsystem", "daemon")
	coord := coordinator.New(cfg, provider)
	if err := coord.Start(); err != nil {
		return fmt.Errorf("start coordinator: %w", err)
	}
	log.WithField("config", configPath).Info("focusd running")

	var watcher *config.Watcher
	if !noWatch {
		watcher, err = config.NewWatcher(configPath, func(next *config.Config) {
			applyLogLevel(next)
			coord.ApplyConfig(next)
			log.Info("config applied")
		})
		if err != nil {
			log.WithError(err).Warn("config watching unavailable")
		} else if err := watcher.Start(); err != nil {
			log.WithError(err).Warn("config watching unavailable")
			watcher = nil
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Info("reloading on SIGHUP")
				if err := coord.Reload(); err != nil {
					log.WithError(err).Error("reload failed")
				}
			default:
				log.WithField("signal", sig.String()).Info("shutting down")
				if watcher != nil {
					watcher.Stop()
				}
				coord.Stop()
				platform.StopEventLoop()
				return
			}
		}
	}()

	// Workspace notifications and hotkey events are delivered on the native
	// event loop; the main goroutine parks here until shutdown.
	platform.RunEventLoop()
	return nil
}

func applyLogLevel(cfg *config.Config) {
	// The --log-level flag wins over the config file.
	if flag, _ := rootCmd.PersistentFlags().GetString("log-level"); flag != "" {
		return
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}
}
