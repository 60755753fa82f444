package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/flavor/go/pkgext/internal/config"
	"github.com/provide-io/flavor/go/pkgext/pkg/logging"
)

const version = "0.1.0"

// errReported signals that failures were already printed; main only sets the
// exit code.
var errReported = errors.New("one or more inputs were rejected")

type app struct {
	stdout   io.Writer
	stderr   io.Writer
	cfg      config.Config
	logLevel string
	logger   hclog.Logger
}

// buildStamp describes the binary from its embedded VCS settings, falling
// back to the executable's modification time.
func buildStamp() string {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	return formatBuildStamp(settings, executableModTime())
}

func formatBuildStamp(settings []debug.BuildSetting, fallback time.Time) string {
	vcs := make(map[string]string, len(settings))
	for _, setting := range settings {
		vcs[setting.Key] = setting.Value
	}

	stamp := fallback
	if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
		stamp = t
	}
	out := stamp.UTC().Format(time.RFC3339)

	rev := vcs["vcs.revision"]
	if rev == "" {
		return out
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if vcs["vcs.modified"] == "true" {
		rev += ", dirty"
	}
	return out + " (" + rev + ")"
}

func executableModTime() time.Time {
	exePath, err := os.Executable()
	if err != nil {
		return time.Now()
	}
	stat, err := os.Stat(exePath)
	if err != nil {
		return time.Now()
	}
	return stat.ModTime()
}

func newRootCmd(a *app) *cobra.Command {
	var versionFlag bool

	rootCmd := &cobra.Command{
		Use:           "pkgext",
		Short:         "Validate and classify installer file extensions",
		Long:          "Validate and classify installer file extensions.\n\nEnvironment:\n" + config.Usage(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := a.cfg.LogLevel
			if a.logLevel != "" {
				level = a.logLevel
			}
			a.logger = logging.NewLogger(logging.Options{
				Name:   "pkgext",
				Level:  level,
				JSON:   a.cfg.JSONLog,
				Output: a.stderr,
			})
			a.logger.Trace("starting", "command", cmd.Name(), "args", args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				fmt.Fprintf(a.stdout, "pkgext %s\n", version)
				fmt.Fprintf(a.stdout, "Built: %s\n", buildStamp())
				return nil
			}
			return cmd.Help()
		},
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(
		newListCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newScanCmd(a),
	)
	return rootCmd
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a := &app{stdout: os.Stdout, stderr: os.Stderr, cfg: cfg}
	if err := newRootCmd(a).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
