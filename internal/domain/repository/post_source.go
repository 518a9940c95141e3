package repository

import (
	"context"

	"reprint/internal/domain/entity"
)

// PostSource yields the raw items of one feed. A fetch or parse failure
// is a hard failure for the caller's whole operation.
type PostSource interface {
	Fetch(ctx context.Context) ([]entity.RawItem, error)
}
