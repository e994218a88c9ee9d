package repo

import (
	"context"

	"github.com/momeni/repair-gateway/pkg/core/model"
)

// Renderer turns a mapped report into a PDF document.
type Renderer interface {
	Render(ctx context.Context, r model.Report) ([]byte, error)
}
