package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cuemby/n8nup/pkg/log"
	"github.com/cuemby/n8nup/pkg/stack"
	"github.com/cuemby/n8nup/pkg/types"
	"github.com/cuemby/n8nup/pkg/upgrade"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "n8nup [tag]",
	Short: "n8nup - Rolling upgrade for compose-managed n8n",
	Long: `n8nup upgrades a single n8n service managed by Docker Compose.

It detects the compose command and compose file, locates the n8n service
by its image, rewrites the pinned tag in place (after taking a timestamped
backup), pulls the new image, recreates only that service, and verifies
that the running version actually changed.

With no tag argument the "latest" tag is applied.`,
	Version:          Version,
	Args:             cobra.MaximumNArgs(1),
	SilenceUsage:     true,
	PersistentPreRun: initLogging,
	RunE:             runUpgrade,
}

func init() {
	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"n8nup version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON instead of console format")

	rootCmd.Flags().StringP("file", "f", "", "Compose file (default: auto-detect)")
	rootCmd.Flags().StringP("project-dir", "d", ".", "Compose project directory")
	rootCmd.Flags().Duration("grace", 10*time.Second, "Settle time before the post-upgrade version check")
	rootCmd.Flags().Bool("dry-run", false, "Print the plan without changing anything")
}

func initLogging(cmd *cobra.Command, args []string) {
	level, _ := cmd.Flags().GetString("log-level")
	jsonOutput, _ := cmd.Flags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(level),
		JSONOutput: jsonOutput,
		Output:     os.Stderr,
	})
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	tag := stack.DefaultTag
	if len(args) == 1 && args[0] != "" {
		tag = args[0]
	}

	file, _ := cmd.Flags().GetString("file")
	dir, _ := cmd.Flags().GetString("project-dir")
	grace, _ := cmd.Flags().GetDuration("grace")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	u := upgrade.New(upgrade.Config{
		Dir:         dir,
		File:        file,
		GracePeriod: grace,
		DryRun:      dryRun,
	})

	rep, err := u.Run(cmd.Context(), tag)
	if err != nil {
		return err
	}

	fmt.Println()
	switch {
	case rep.DryRun:
		color.Cyan("Dry run complete: nothing was changed")
	case rep.Changed && rep.Direction == types.DirectionDowngrade:
		color.Yellow("⚠ Running version moved backwards: %s to %s", rep.VersionBefore, rep.VersionAfter)
	case rep.Changed:
		color.Green("✅ Upgrade complete: %s to %s", rep.VersionBefore, rep.VersionAfter)
	default:
		color.Yellow("⚠ Version unchanged (%s); check the service logs to confirm the upgrade took effect", rep.VersionAfter)
	}

	return nil
}
