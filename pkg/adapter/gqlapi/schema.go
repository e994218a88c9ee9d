// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gqlapi exposes the admin and reports use cases as a GraphQL
// schema. The schema is parsed once and executed per request, passing
// the caller credentials through the context, so resolvers can forward
// them to the upstream REST API.
//
// Resolver failures become field-level GraphQL errors. When an error
// carries an HTTP status (e.g., a missing upstream entity), it is
// reported as the "status" extension of that error.
package gqlapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/graph-gophers/graphql-go"
	"github.com/momeni/repair-gateway/pkg/core/cerr"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/momeni/repair-gateway/pkg/core/usecase/adminuc"
	"github.com/momeni/repair-gateway/pkg/core/usecase/reportsuc"
)

//go:embed schema.graphql
var sdl string

// SDL returns the schema definition which is served by Schema.
func SDL() string {
	return sdl
}

// Schema is an executable GraphQL schema.
type Schema struct {
	schema *graphql.Schema

	maxDepth      int
	introspection *bool
}

// Option is a functional option for the New function.
type Option func(s *Schema) error

// WithMaxDepth rejects queries which are nested deeper than n levels.
// Zero disables the depth check.
func WithMaxDepth(n int) Option {
	return func(s *Schema) error {
		if n < 0 {
			return fmt.Errorf("max depth (%d) is negative", n)
		}
		s.maxDepth = n
		return nil
	}
}

// WithIntrospection enables or disables the introspection queries.
// They are enabled by default.
func WithIntrospection(enabled bool) Option {
	return func(s *Schema) error {
		if s.introspection != nil {
			return errors.New("introspection is already configured")
		}
		s.introspection = &enabled
		return nil
	}
}

// New parses the embedded schema and binds its query fields to the
// admin and reports use cases.
func New(
	admin *adminuc.UseCase, reports *reportsuc.UseCase, opts ...Option,
) (*Schema, error) {
	s := &Schema{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	gopts := []graphql.SchemaOpt{
		graphql.UseFieldResolvers(),
		graphql.Logger(panicLogger{}),
	}
	if s.maxDepth > 0 {
		gopts = append(gopts, graphql.MaxDepth(s.maxDepth))
	}
	if s.introspection != nil && !*s.introspection {
		gopts = append(gopts, graphql.DisableIntrospection())
	}
	var err error
	s.schema, err = graphql.ParseSchema(
		sdl, &resolver{admin: admin, reports: reports}, gopts...,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return s, nil
}

// Exec runs the query on behalf of the token holder. The token is the
// verbatim Authorization header of the caller and may be empty.
// Errors are reported in the returned response.
func (s *Schema) Exec(
	ctx context.Context,
	token, query, operationName string,
	variables map[string]any,
) *graphql.Response {
	ctx = WithToken(ctx, token)
	resp := s.schema.Exec(ctx, query, operationName, variables)
	if len(resp.Errors) > 0 {
		log.Debug(
			ctx, "graphql query has errors",
			slog.String("operation", operationName),
			slog.Int("errors", len(resp.Errors)),
			slog.String("first", resp.Errors[0].Message),
		)
	}
	return resp
}

type tokenKey struct{}

// WithToken returns a ctx child which carries the caller token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value any) {
	log.Error(ctx, "graphql resolver panicked", slog.Any("panic", value))
}

// fieldError adds the HTTP status of a failed resolver (if known) as
// an extension of its GraphQL error.
type fieldError struct {
	err error
}

func (fe *fieldError) Error() string {
	return fe.err.Error()
}

func (fe *fieldError) Unwrap() error {
	return fe.err
}

func (fe *fieldError) Extensions() map[string]any {
	var ce *cerr.Error
	if errors.As(fe.err, &ce) {
		return map[string]any{"status": ce.HTTPStatusCode}
	}
	return nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &fieldError{err: err}
}
