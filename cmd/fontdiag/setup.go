package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fontdiag/fontdiag/pkg/mcp"
	"github.com/fontdiag/fontdiag/pkg/probe"
	"github.com/fontdiag/fontdiag/pkg/util"
	"github.com/fontdiag/fontdiag/pkg/watch"
	"github.com/fontdiag/fontdiag/pkg/x11"
)

// buildEnv opens the display connection and assembles the probe
// environment. No display is a fatal precondition: every run needs
// one for geometry and the resource database.
func buildEnv(cfg *Config) (*probe.Env, func(), error) {
	logger := util.NewLogger(cfg.loggerConfig())
	conn, err := x11.Connect()
	if err != nil {
		return nil, nil, err
	}
	env := &probe.Env{
		X:             conn,
		Logger:        logger,
		HelperCommand: cfg.HelperCommand,
		ResourceKeys:  cfg.ResourceKeys,
	}
	return env, conn.Close, nil
}

func runReport(args []string) int {
	opts, err := parseReportFlags(args)
	if err != nil {
		printUsage(os.Stderr)
		return 1
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	env, cleanup, err := buildEnv(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	defer cleanup()

	runner := probe.NewRunner(env)
	if err := runner.WriteReport(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	return 0
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("fontdiag serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	ttl := fs.Duration("cache-ttl", mcp.DefaultCacheTTL, "how long probe results are reused")
	logFile := fs.String("log-file", "", "JSONL log of tool calls")
	if err := fs.Parse(args); err != nil {
		printUsage(os.Stderr)
		return 1
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	env, cleanup, err := buildEnv(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	defer cleanup()

	srv, err := mcp.NewServer(probe.NewRunner(env), mcp.Options{
		Version:  version,
		CacheTTL: *ttl,
		LogFile:  *logFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: server error: %v\n", err)
		return 1
	}
	return 0
}

func runWatch(args []string) int {
	opts, err := parseReportFlags(args)
	if err != nil {
		printUsage(os.Stderr)
		return 1
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	env, cleanup, err := buildEnv(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	defer cleanup()

	runner := probe.NewRunner(env)
	logger := env.Logger

	printReport := func() {
		if err := runner.WriteReport(context.Background(), opts, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		}
	}
	printReport()

	home, _ := os.UserHomeDir()
	w, err := watch.New(func(path string) {
		logger.Info("configuration changed", "path", path, "at", time.Now().Format(time.TimeOnly))
		printReport()
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	if err := w.Start(watch.DefaultPaths(home, userConfigDir())); err != nil {
		fmt.Fprintf(os.Stderr, "fontdiag: %v\n", err)
		return 1
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return 0
}
