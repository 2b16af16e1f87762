package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/memtachyon"
	"github.com/wippyai/tachyon-bridge/tachyon"
)

// lines collects repeated -e flags.
type lines []string

func (l *lines) String() string { return strings.Join(*l, "; ") }

func (l *lines) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		master      = flag.String("master", "", "Master URI (default "+defaultMaster+")")
		configPath  = flag.String("config", "", "Path to YAML config file")
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		script      lines
	)
	flag.Var(&script, "e", "Command to run; repeat to run several in one session")
	flag.Parse()

	if !*interactive && len(script) == 0 && flag.NArg() == 0 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(*configPath, *master, *verbose, *interactive, script, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tfs [-master uri] [-config file] <command> [args...]")
	fmt.Fprintln(w, "       tfs -e \"put /a hi\" -e \"cat /a\"")
	fmt.Fprintln(w, "       tfs -i  (interactive mode)")
	fmt.Fprintln(w, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-24s %s\n", c.usage(), c.help)
	}
}

func run(configPath, master string, verbose, interactive bool, script, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if master != "" {
		cfg.Master = master
	}

	log, err := cfg.logger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	setLoggers(log)

	ctx := context.Background()
	eng, err := memtachyon.NewEngine(ctx, cfg.engineConfig(), cfg.clusterOptions())
	if err != nil {
		return fmt.Errorf("start runtime: %w", err)
	}
	defer eng.Close(ctx)

	ctx, _, err = bridge.NewProvider(eng).Attach(ctx)
	if err != nil {
		return fmt.Errorf("attach: %w", err)
	}

	if interactive {
		return runInteractive(ctx, cfg)
	}

	s, err := newSession(ctx, cfg.Master, cfg.KVStore, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(script) == 0 {
		return s.execArgs(args[0], args[1:])
	}
	for _, line := range script {
		if err := s.exec(line); err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
	}
	return nil
}

func setLoggers(log *zap.Logger) {
	engine.SetLogger(log.Named("engine"))
	bridge.SetLogger(log.Named("bridge"))
	memtachyon.SetLogger(log.Named("memtachyon"))
	tachyon.SetLogger(log.Named("tachyon"))
}
