// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package report implements the repo.Renderer port. It fills the
// {{token}} placeholders of an HTML template (named after the report)
// and converts the result into a PDF document using the pdf package.
//
// Templates are embedded into the binary and may be replaced by the
// files of a directory. Placeholders are replaced literally, so
// unknown tokens stay verbatim in the output and values are never
// interpreted as template syntax.
package report

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/momeni/repair-gateway/pkg/adapter/report/pdf"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/momeni/repair-gateway/pkg/core/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultDateFormat is the layout of the {{generated_date}} token.
const DefaultDateFormat = "02/01/2006 15:04"

//go:embed templates/*.html
var embedded embed.FS

// Renderer renders model.Report instances as PDF documents.
type Renderer struct {
	templates  fs.FS
	dateFormat string
	now        func() time.Time
	converter  *pdf.Converter
	reg        prometheus.Registerer
	duration   *prometheus.HistogramVec
}

// Option is a functional option for the New function.
type Option func(r *Renderer) error

// WithTemplatesDir loads the templates from the dir directory instead
// of the embedded ones. Files must be named like <report>.html.
func WithTemplatesDir(dir string) Option {
	return func(r *Renderer) error {
		if r.templates != nil {
			return errors.New("templates are already configured")
		}
		fi, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("checking templates dir: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("%q is not a directory", dir)
		}
		r.templates = os.DirFS(dir)
		return nil
	}
}

// WithTemplatesFS loads the templates from the fsys root.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(r *Renderer) error {
		if r.templates != nil {
			return errors.New("templates are already configured")
		}
		r.templates = fsys
		return nil
	}
}

// WithDateFormat configures the Go time layout of generation dates.
func WithDateFormat(layout string) Option {
	return func(r *Renderer) error {
		if layout == "" {
			return errors.New("empty date format")
		}
		r.dateFormat = layout
		return nil
	}
}

// WithClock configures the time source of generation dates.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) error {
		if now == nil {
			return errors.New("nil clock")
		}
		r.now = now
		return nil
	}
}

// WithConverter configures the HTML to PDF converter.
func WithConverter(c *pdf.Converter) Option {
	return func(r *Renderer) error {
		if r.converter != nil {
			return errors.New("converter is already configured")
		}
		r.converter = c
		return nil
	}
}

// WithRegisterer registers the rendering metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Renderer) error {
		r.reg = reg
		return nil
	}
}

// New instantiates a Renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if r.templates == nil {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("embedded templates: %w", err)
		}
		r.templates = sub
	}
	if r.dateFormat == "" {
		r.dateFormat = DefaultDateFormat
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.converter == nil {
		c, err := pdf.New()
		if err != nil {
			return nil, fmt.Errorf("pdf.New: %w", err)
		}
		r.converter = c
	}
	r.duration = promauto.With(r.reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rgweb",
			Subsystem: "report",
			Name:      "render_duration_seconds",
			Help:      "Report rendering latency by report and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"report", "outcome"},
	)
	return r, nil
}

// Render fills the rep.Name template and converts it to PDF.
// A missing template causes an error which wraps fs.ErrNotExist.
func (r *Renderer) Render(
	ctx context.Context, rep model.Report,
) (doc []byte, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		r.duration.WithLabelValues(rep.Name, outcome).Observe(
			time.Since(start).Seconds(),
		)
	}()
	page, err := r.HTML(rep)
	if err != nil {
		return nil, err
	}
	doc, err = r.converter.Convert(page)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", rep.Name, err)
	}
	log.Debug(
		ctx, "report is converted",
		slog.String("report", rep.Name),
		slog.Int("html", len(page)),
		slog.Int("pdf", len(doc)),
	)
	return doc, nil
}

// HTML loads the rep.Name template and fills its placeholders.
func (r *Renderer) HTML(rep model.Report) (string, error) {
	if !fs.ValidPath(rep.Name) || rep.Name == "." {
		return "", fmt.Errorf("invalid report name %q: %w", rep.Name, fs.ErrNotExist)
	}
	tmpl, err := fs.ReadFile(r.templates, rep.Name+".html")
	if err != nil {
		return "", fmt.Errorf("loading %s template: %w", rep.Name, err)
	}
	return fill(string(tmpl), rep, r.now().Format(r.dateFormat)), nil
}
