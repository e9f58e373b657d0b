// Package catalog supplies travel offers to the search orchestrator. The
// catalog is owned by the external data source; this package only reads it
// and guards ingestion so degenerate offers never reach the ranking engine.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"trip-planner/pkg/trip"
)

var (
	// ErrMissingID rejects offers without a stable identifier.
	ErrMissingID = errors.New("offer has no id")
	// ErrNoSegments rejects offers with an empty itinerary.
	ErrNoSegments = errors.New("offer has no segments")
	// ErrNonPositivePrice rejects offers whose price would produce an
	// undefined points-per-currency ratio.
	ErrNonPositivePrice = errors.New("offer price must be positive")
)

// Source yields the catalog subset for a search goal. Implementations must
// return offers in a deterministic order; that order is the ranking engine's
// tie-breaker.
type Source interface {
	Offers(ctx context.Context, goal trip.Goal) ([]trip.Offer, error)
}

// ValidateOffer enforces the ingestion contract: an identified, non-empty
// itinerary at a strictly positive price.
func ValidateOffer(o trip.Offer) error {
	if o.ID == "" {
		return ErrMissingID
	}
	if len(o.Itinerary) == 0 {
		return fmt.Errorf("offer %s: %w", o.ID, ErrNoSegments)
	}
	if o.Price.Amount.Sign() <= 0 {
		return fmt.Errorf("offer %s: %w (got %s)", o.ID, ErrNonPositivePrice, o.Price.Amount)
	}
	return nil
}

// StaticSource serves one fixed, pre-validated offer list for every goal.
// Useful for CLI runs against a caller-supplied catalog file.
type StaticSource struct {
	offers []trip.Offer
}

// NewStaticSource validates every offer up front and rejects the whole set
// on the first bad one, so a degenerate catalog fails loudly at load time.
func NewStaticSource(offers []trip.Offer) (*StaticSource, error) {
	for _, o := range offers {
		if err := ValidateOffer(o); err != nil {
			return nil, err
		}
	}
	return &StaticSource{offers: offers}, nil
}

// Offers returns the fixed list regardless of goal.
func (s *StaticSource) Offers(_ context.Context, _ trip.Goal) ([]trip.Offer, error) {
	return s.offers, nil
}
