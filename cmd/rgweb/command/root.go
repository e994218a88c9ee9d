// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of rgweb.
// Commands are organized using the cobra library.
// The root command starts the web server itself, the "report"
// sub-command renders one PDF report into a file, and the "config"
// sub-command prints the normalized configuration settings.
//
//	./rgweb [-c /path/of/config.yaml]              # start web server
//	./rgweb report <name> [--id ID] [--status S] [--threshold N]
//	    [--token TOKEN] -o /path/of/report.pdf [-c /path/of/config.yaml]
//	./rgweb config [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/repair-gateway/pkg/adapter/config"
	"github.com/momeni/repair-gateway/pkg/adapter/restful/gin"
	"github.com/momeni/repair-gateway/pkg/adapter/restful/gin/routes"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "rgweb",
	Short: "A GraphQL gateway for the device repair management API",
	Long: `A GraphQL gateway for the device repair management API.
It exposes the users, technicians, equipments, spare parts, services,
and repair orders of the REST backend through a single GraphQL schema,
computes aggregations (like the business dashboard and technicians
performance), and renders PDF reports which are returned as base64
strings or downloaded from the /reports/:name endpoint.
The caller Authorization header is forwarded to the REST backend as is,
so the backend remains the authority for authentication.`,
	SilenceUsage: true,
	RunE:         startWebServer,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	var reg *prometheus.Registry
	if *c.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	gin.SetMode(*c.Gin.Mode)
	e := gin.New(routes.Middlewares(c, reg)...)
	if err = routes.Register(e, c, reg); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              *c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "web server is started",
			slog.String("address", srv.Addr),
			slog.String("upstream", *c.Upstream.Mode),
		)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err = <-errc:
		return fmt.Errorf("running web server: %w", err)
	case <-ctx.Done():
	}
	log.Info(context.Background(), "web server is shutting down")
	sctx, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout,
	)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	if err = <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loadConfig loads the cfgPath configuration file and installs its
// logging settings.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.SetupLogging(os.Stderr); err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// non-zero on failures.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	cfgPath = config.Path(cfgPath)
}
