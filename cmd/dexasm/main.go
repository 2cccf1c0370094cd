package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/dexasm/config"
	"github.com/wippyai/dexasm/disasm"
	"github.com/wippyai/dexasm/encoder"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	out      io.Writer
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *encoder.Metrics
	cfgPath  string
	cfg      config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "dexasm",
		Short:         "Select formats for and encode dex instructions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML settings file")
	pf.String(config.FlagName(config.KeyByteOrder), "little", "byte order of binary code units: little or big")
	pf.Int(config.FlagName(config.KeyWorkers), runtime.NumCPU(), "parallel encoding workers")
	pf.String(config.FlagName(config.KeyLogLevel), "warn", "log level: debug, info, warn or error")
	pf.String(config.FlagName(config.KeyFormat), "hex", "encode output: hex listing or binary")
	pf.Bool(config.FlagName(config.KeyMetrics), false, "print encoder counters after encoding")

	root.AddCommand(
		a.encodeCmd(),
		a.disasmCmd(),
		a.formatsCmd(),
		a.opsCmd(),
		a.configCmd(),
		a.replCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.log = log
	encoder.SetLogger(log)
	disasm.SetLogger(log)

	a.registry = prometheus.NewRegistry()
	if cfg.Metrics {
		m, err := encoder.NewMetrics(a.registry)
		if err != nil {
			return err
		}
		a.metrics = m
	}

	log.Debug("settings loaded",
		zap.String("byte_order", cfg.ByteOrder),
		zap.Int("workers", cfg.Workers),
		zap.String("format", cfg.Format),
		zap.Bool("metrics", cfg.Metrics))
	return nil
}

func (a *app) encoderOptions() encoder.Options {
	return encoder.Options{
		ByteOrder: a.cfg.Order(),
		Metrics:   a.metrics,
		Workers:   a.cfg.Workers,
	}
}
