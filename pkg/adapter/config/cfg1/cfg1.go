// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 contains the v1 format of the gateway configuration
// file. Its Config struct is decoded from YAML, validated, filled with
// defaults, and then used as a factory for the upstream repository,
// the report renderer, the use cases, and the GraphQL schema.
package cfg1

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/repair-gateway/pkg/adapter/config/settings"
	"github.com/momeni/repair-gateway/pkg/adapter/config/vers"
	"github.com/momeni/repair-gateway/pkg/adapter/gqlapi"
	"github.com/momeni/repair-gateway/pkg/adapter/report"
	"github.com/momeni/repair-gateway/pkg/adapter/report/pdf"
	"github.com/momeni/repair-gateway/pkg/adapter/upstream/fixturerp"
	"github.com/momeni/repair-gateway/pkg/adapter/upstream/restrp"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/momeni/repair-gateway/pkg/core/repo"
	"github.com/momeni/repair-gateway/pkg/core/usecase/adminuc"
	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

// Major, Minor, and Patch components of the configuration format
// version which is supported by this package.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the configuration format version of this package.
var Version = model.SemVer{Major, Minor, Patch}

// Upstream modes.
const (
	ModeREST    = "rest"
	ModeFixture = "fixture"
)

// Defaults which are used by ValidateAndNormalize for missing settings.
const (
	DefaultAddress     = ":8080"
	DefaultGinMode     = "release"
	DefaultGraphQLPath = "/graphql"
	DefaultMaxDepth    = 10
	DefaultMetricsPath = "/metrics"
	DefaultLogLevel    = "info"
)

// Config is the v1 configuration file.
type Config struct {
	Upstream Upstream `yaml:"upstream"`
	Gin      Gin      `yaml:"gin"`
	GraphQL  GraphQL  `yaml:"graphql"`
	Reports  Reports  `yaml:"reports"`
	Logging  Logging  `yaml:"logging"`
	Metrics  Metrics  `yaml:"metrics"`

	Vers vers.Config `yaml:",inline"`
}

// Upstream describes how the REST backend is reached.
type Upstream struct {
	// APIURL is the base URL of the REST API, e.g., http://api:3000/api.
	// It is required in the rest mode.
	APIURL *string `yaml:"api-url,omitempty" validate:"omitempty,url"`

	Timeout    *settings.Duration `yaml:"timeout"`
	MinTimeout *settings.Duration `yaml:"timeout-minimum,omitempty"`
	MaxTimeout *settings.Duration `yaml:"timeout-maximum,omitempty"`

	// Mode is rest (default) or fixture. The fixture mode serves the
	// embedded mock records and needs no backend.
	Mode *string `yaml:"mode" validate:"omitempty,oneof=rest fixture"`
}

// Gin contains the web server settings.
type Gin struct {
	Logger   *bool   `yaml:"logger"`
	Recovery *bool   `yaml:"recovery"`
	Address  *string `yaml:"address"`
	Mode     *string `yaml:"mode" validate:"omitempty,oneof=debug release test"`

	// AllowedOrigins are passed to the CORS middleware. The CORS
	// middleware is not installed when it is empty.
	AllowedOrigins []string `yaml:"allowed-origins,omitempty" validate:"dive,required"`
}

// GraphQL contains the GraphQL endpoint settings.
type GraphQL struct {
	Path          *string `yaml:"path" validate:"omitempty,startswith=/"`
	MaxDepth      *int    `yaml:"max-depth" validate:"omitempty,min=0"`
	Introspection *bool   `yaml:"introspection"`
}

// Reports contains the report renderer settings.
type Reports struct {
	TemplatesDir      *string `yaml:"templates-dir"`
	DateFormat        *string `yaml:"date-format"`
	LowStockThreshold *int64  `yaml:"low-stock-threshold" validate:"omitempty,min=0"`
	PageSize          *string `yaml:"page-size" validate:"omitempty,oneof=A4 Letter"`
}

// Logging selects the default slog handler.
type Logging struct {
	Level  *string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format *string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Metrics controls the prometheus endpoint.
type Metrics struct {
	Enabled *bool   `yaml:"enabled"`
	Path    *string `yaml:"path" validate:"omitempty,startswith=/"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes data without validating it. Callers may override some
// settings (e.g., from the environment variables) before calling the
// ValidateAndNormalize method.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return c, nil
}

// Load parses, validates, and normalizes data.
func Load(data []byte) (*Config, error) {
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize checks the version and the field constraints of
// c and fills its missing settings with their default values, so other
// methods may dereference them.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return err
	}

	u := &c.Upstream
	settings.Default(&u.Mode, ModeREST)
	if *u.Mode == ModeREST && (u.APIURL == nil || *u.APIURL == "") {
		return errors.New("upstream.api-url is required in rest mode")
	}
	settings.Default(&u.Timeout, settings.Duration(restrp.DefaultTimeout))
	if err := settings.VerifyRange(
		"upstream.timeout", u.Timeout, u.MinTimeout, u.MaxTimeout,
	); err != nil {
		return err
	}
	if *u.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}

	g := &c.Gin
	settings.Default(&g.Logger, true)
	settings.Default(&g.Recovery, true)
	settings.Default(&g.Address, DefaultAddress)
	settings.Default(&g.Mode, DefaultGinMode)

	settings.Default(&c.GraphQL.Path, DefaultGraphQLPath)
	settings.Default(&c.GraphQL.MaxDepth, DefaultMaxDepth)
	settings.Default(&c.GraphQL.Introspection, true)

	r := &c.Reports
	settings.Nil2Zero(&r.TemplatesDir)
	settings.Default(&r.DateFormat, report.DefaultDateFormat)
	settings.Default(&r.LowStockThreshold, model.DefaultLowStockThreshold)
	settings.Default(&r.PageSize, pdf.A4)

	settings.Default(&c.Logging.Level, DefaultLogLevel)
	settings.Default(&c.Logging.Format, log.FormatText)

	settings.Default(&c.Metrics.Enabled, true)
	settings.Default(&c.Metrics.Path, DefaultMetricsPath)
	return nil
}

// MarshalYAML writes c with its version set to the supported one, so
// a printed configuration can be loaded again.
func (c *Config) MarshalYAML() (any, error) {
	type plain Config
	p := (*plain)(c)
	cp := *p
	cp.Vers.Versions.Config = Version
	return &cp, nil
}

// Print writes c as YAML into w.
func (c *Config) Print(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// UpstreamTimeout returns the normalized REST client timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	return c.Upstream.Timeout.Std()
}

// NewUpstream creates the upstream repository of the configured mode.
// REST client metrics are registered in reg, if it is not nil.
func (c *Config) NewUpstream(reg prometheus.Registerer) (repo.Upstream, error) {
	if *c.Upstream.Mode == ModeFixture {
		r, err := fixturerp.New()
		if err != nil {
			return nil, fmt.Errorf("loading fixtures: %w", err)
		}
		return r, nil
	}
	r, err := restrp.New(
		*c.Upstream.APIURL,
		restrp.WithTimeout(c.UpstreamTimeout()),
		restrp.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("creating REST client: %w", err)
	}
	return r, nil
}

// NewRenderer creates the HTML to PDF report renderer.
func (c *Config) NewRenderer(reg prometheus.Registerer) (*report.Renderer, error) {
	conv, err := pdf.New(pdf.WithPageSize(*c.Reports.PageSize))
	if err != nil {
		return nil, fmt.Errorf("creating PDF converter: %w", err)
	}
	opts := []report.Option{
		report.WithConverter(conv),
		report.WithDateFormat(*c.Reports.DateFormat),
		report.WithRegisterer(reg),
	}
	if dir := *c.Reports.TemplatesDir; dir != "" {
		opts = append(opts, report.WithTemplatesDir(dir))
	}
	return report.New(opts...)
}

// NewAdminUseCase creates the entities and aggregations use case.
func (c *Config) NewAdminUseCase(u repo.Upstream) (*adminuc.UseCase, error) {
	return adminuc.New(
		u, adminuc.WithLowStockThreshold(*c.Reports.LowStockThreshold),
	)
}

// NewReportsUseCase creates the reports use case.
func (c *Config) NewReportsUseCase(
	u repo.Upstream, r repo.Renderer,
) (*reportsuc.UseCase, error) {
	return reportsuc.New(
		u, r, reportsuc.WithLowStockThreshold(*c.Reports.LowStockThreshold),
	)
}

// NewSchema parses the GraphQL schema with the configured limits.
func (c *Config) NewSchema(
	admin *adminuc.UseCase, reports *reportsuc.UseCase,
) (*gqlapi.Schema, error) {
	return gqlapi.New(
		admin, reports,
		gqlapi.WithMaxDepth(*c.GraphQL.MaxDepth),
		gqlapi.WithIntrospection(*c.GraphQL.Introspection),
	)
}

// SetupLogging installs the configured slog handler writing into w.
func (c *Config) SetupLogging(w io.Writer) error {
	return log.Setup(w, *c.Logging.Level, *c.Logging.Format)
}
