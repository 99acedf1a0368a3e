package main

import (
	"fmt"
	"log/slog"
	"os"

	webflow "github.com/mpoindexter/spring-webflow"
	"github.com/mpoindexter/spring-webflow/internal/config"
	"github.com/mpoindexter/spring-webflow/internal/logging"
	"github.com/mpoindexter/spring-webflow/pkg/adapters/redis"
	"github.com/mpoindexter/spring-webflow/pkg/observability"
	"github.com/mpoindexter/spring-webflow/pkg/ports"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app bundles what the commands share.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	asm     *webflow.Assembler
	// store is set when definitions live in Redis.
	store ports.FlowStore
}

// setup loads the configuration, applies flag overrides and builds the assembler.
func setup(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()

	cfgPath, _ := flags.GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if flags.Changed("dir") {
		cfg.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("redis") {
		cfg.Redis.Addr, _ = flags.GetString("redis")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logging.New(level),
		metrics: observability.NewMetrics(),
	}

	opts := []webflow.Option{
		webflow.WithLogger(a.logger),
		webflow.WithMetrics(a.metrics),
	}
	if cfg.Strict {
		opts = append(opts, webflow.WithReachabilityCheck())
	}
	if cfg.Redis.Addr != "" {
		var redisOpts []redis.Option
		if cfg.Redis.Prefix != "" {
			redisOpts = append(redisOpts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisOpts...)
		a.store = store
		opts = append(opts, webflow.WithLoader(store))
		a.logger.Debug("loading flows from redis", "addr", cfg.Redis.Addr)
	}

	a.asm, err = webflow.New(cfg.Dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init assembler: %w", err)
	}
	return a, nil
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
