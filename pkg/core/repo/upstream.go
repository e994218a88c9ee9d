package repo

import (
	"context"

	"github.com/momeni/repair-gateway/pkg/core/model"
)

// UpstreamQueryer fetches raw records from the upstream REST API on
// behalf of one caller. Empty upstream bodies yield empty lists (or
// empty records) and upstream failures yield *cerr.UpstreamError.
type UpstreamQueryer interface {
	Users(ctx context.Context) ([]model.Record, error)
	User(ctx context.Context, id string) (model.Record, error)
	Technicians(ctx context.Context) ([]model.Record, error)
	Equipments(ctx context.Context) ([]model.Record, error)
	Equipment(ctx context.Context, id string) (model.Record, error)
	SpareParts(ctx context.Context) ([]model.Record, error)
	Services(ctx context.Context) ([]model.Record, error)
	RepairOrders(ctx context.Context) ([]model.Record, error)
	RepairOrder(ctx context.Context, id string) (model.Record, error)
}

// Upstream binds the caller credentials to an UpstreamQueryer.
// The token may be empty (anonymous), a raw token, or an already
// prefixed "Bearer <token>" header value.
type Upstream interface {
	Bearer(token string) UpstreamQueryer
}
