// Package source supplies the raw users collection behind the dashboard table.
package source

import (
	"context"

	"dashboard/internal/domain/models"
)

// Source loads the full users collection in source order.
type Source interface {
	Name() string
	List(ctx context.Context) ([]models.User, error)
}
