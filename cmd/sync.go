package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lodestone-mc/lodestone/internal/config"
	"github.com/lodestone-mc/lodestone/internal/ghout"
	"github.com/lodestone-mc/lodestone/internal/modrinth"
	"github.com/lodestone-mc/lodestone/internal/pack"
	"github.com/lodestone-mc/lodestone/internal/packwiz"
	"github.com/lodestone-mc/lodestone/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync PACK_DIR SLUG PLATFORM VERSION MC_VERSION LOADER",
	Short: "Add or update a released mod in a packwiz modpack",
	Long: "Sync reconciles a packwiz pack with a newly published mod version. It\n" +
		"invokes packwiz repeatedly until the pack's working tree shows a change,\n" +
		"waiting out release propagation delays on the hosting platforms.",
	Args: cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		target := sync.Target{
			PackDir:   args[0],
			Slug:      args[1],
			Platform:  args[2],
			Version:   args[3],
			MCVersion: args[4],
			Loader:    args[5],
		}
		if _, err := os.Stat(target.PackDir); err != nil {
			return fmt.Errorf("pack directory %s does not exist", target.PackDir)
		}
		if target.Platform != sync.PlatformModrinth && target.Platform != sync.PlatformCurseForge {
			return fmt.Errorf("platform must be %q or %q; got %q", sync.PlatformModrinth, sync.PlatformCurseForge, target.Platform)
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sync"})
		if cfg.Verbose {
			logger.SetLevel(log.DebugLevel)
		}

		// Outside CI there is no output file; a nil writer is a no-op.
		var out *ghout.Writer
		if os.Getenv(ghout.EnvVar) != "" {
			var err error
			if out, err = ghout.Open(); err != nil {
				return err
			}
			defer out.Close()
		}

		poller := modrinth.NewClient(cfg.APITimeout)
		if cfg.ModrinthAPI != "" {
			poller.BaseURL = cfg.ModrinthAPI
		}

		r := &sync.Reconciler{
			Tool:   &packwiz.Runner{Path: cfg.PackwizPath, Timeout: cfg.ToolTimeout, Verbose: cfg.Verbose},
			Poller: poller,
			Probe:  sync.NewDiffProbe(),
			Pack:   &pack.Index{Dir: target.PackDir},
			Logger: logger,
			Options: sync.Options{
				MaxAttempts: cfg.MaxAttempts,
				Interval:    cfg.RetryInterval,
			},
			OnAction: func(a sync.Action) {
				_ = out.Set("action", string(a))
			},
		}
		return r.Run(cmd.Context(), target)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
