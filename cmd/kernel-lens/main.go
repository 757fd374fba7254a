// Command kernel-lens animates a read(2) call through the kernel I/O stack in the terminal
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/kernel-lens/config"
	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/metrics"
)

var version = "dev"

// flags shared by every command, parameter flags override the config file and environment
type flags struct {
	configPath string
	debug      bool
	journal    bool
	logLevel   string

	descriptor   int
	transferSize int
	cacheHit     int
	difficulty   string
	syscall      string
	fps          int
	mute         bool
}

func main() {
	defer core.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:          "kernel-lens",
		Short:        "Animated walk of read(2) from user space to the block device",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	pf.BoolVar(&f.debug, "debug", false, "write logs to logs/kernel-lens.log")
	pf.BoolVar(&f.journal, "journal", false, "write logs to the systemd journal")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.IntVarP(&f.descriptor, "fd", "f", 0, "file descriptor shown at the origin")
	pf.IntVarP(&f.transferSize, "size", "s", 0, "bytes per read")
	pf.IntVarP(&f.cacheHit, "cache", "c", 0, "page cache hit rate in percent")
	pf.StringVarP(&f.difficulty, "level", "l", "", "difficulty: newcomer, developer, expert")
	pf.StringVar(&f.syscall, "syscall", "", "syscall to visualize")
	pf.IntVar(&f.fps, "fps", 0, "frames per second")
	pf.BoolVar(&f.mute, "mute", false, "start with audio cues muted")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the terminal visualization (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runE(cmd, f)
			},
		},
		newLevelsCmd(),
		newMetricsCmd(f),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "kernel-lens %s\n", version)
			},
		},
	)
	return root
}

// loadConfig layers command-line flags over the file and environment configuration
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("fd") {
		cfg.Descriptor = f.descriptor
	}
	if fs.Changed("size") {
		cfg.TransferSize = f.transferSize
	}
	if fs.Changed("cache") {
		cfg.CacheHit = f.cacheHit
	}
	if fs.Changed("level") {
		cfg.Difficulty = f.difficulty
	}
	if fs.Changed("syscall") {
		cfg.Syscall = f.syscall
	}
	if fs.Changed("fps") {
		cfg.FPS = f.fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runE(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	logger, closer, err := setupLogging(logOptions{Debug: f.debug, Journal: f.journal, Level: f.logLevel})
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	logger.Info("starting", "version", version, "config", f.configPath)
	return runInteractive(cmd.Context(), cfg, f.mute, logger)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List difficulty profiles",
		Run: func(cmd *cobra.Command, args []string) {
			t := newTable("level", "speed", "density", "detail", "shows", "description")
			levels := level.Builtin()
			for _, name := range levels.Names() {
				p, _ := levels.Lookup(name)
				t.Row(
					string(p.Name),
					fmt.Sprintf("%.2gx", p.AnimationSpeed),
					fmt.Sprintf("%.2gx", p.ParticleDensity),
					string(p.LayerDetail),
					strings.Join(shows(p.Verbosity), ", "),
					p.Description,
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}

func shows(v level.Verbosity) []string {
	var out []string
	if v.ShowTooltips {
		out = append(out, "tooltips")
	}
	if v.ShowCode {
		out = append(out, "code")
	}
	if v.ShowMetrics {
		out = append(out, "metrics")
	}
	if v.ShowBreakdown() {
		out = append(out, "breakdown")
	}
	return out
}

func newMetricsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print the latency estimate for the configured parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			set, err := layer.Load(cfg.Syscall)
			if err != nil {
				return err
			}

			r := metrics.Calculate(cfg.TransferSize, cfg.CacheHit)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "latency %s  cache hit %s  I/O ops %d  transfer %s\n", r.LatencyText(), r.CacheText(), r.IOOps, r.TransferText())

			t := newTable("layer", "cost μs")
			for i, l := range set.Layers {
				if i >= len(r.Breakdown) {
					break
				}
				t.Row(l.ID, fmt.Sprintf("%.1f", r.Breakdown[i]))
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}
