package port

import (
	"context"

	"bslcheck/internal/domain"
)

// ChangeLocator finds the lines changed by the most recent commit of the
// repository containing dir.
type ChangeLocator interface {
	Locate(ctx context.Context, dir string) (domain.Changes, error)
}
