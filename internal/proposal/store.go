// Package proposal keeps optimisation proposals for staff review until they
// are applied or expire.
package proposal

import (
	"context"
	"errors"
	"time"

	"roomdesk-backend/internal/domain"
)

var ErrNotFound = errors.New("proposal not found or expired")

type Store interface {
	Save(ctx context.Context, p *domain.Proposal) error
	Get(ctx context.Context, id string) (*domain.Proposal, error)
	Delete(ctx context.Context, id string) error
}

// ttl is the remaining lifetime of p; an expired proposal yields 0.
func ttl(p *domain.Proposal, now time.Time) time.Duration {
	d := p.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
