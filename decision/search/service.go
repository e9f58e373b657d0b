// Package search composes the catalog, ranking engine, and rationale
// generator into the search operation exposed by the API and CLI.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"trip-planner/catalog"
	"trip-planner/decision/ranking"
	"trip-planner/decision/rationale"
	"trip-planner/pkg/trip"
)

// DefaultResultLimit caps a search response. The original hardcoded 10; here
// it is configurable per service, not an inherent limit.
const DefaultResultLimit = 10

// Service runs searches. It is stateless across invocations: every call
// reads the catalog fresh and allocates its own result, so concurrent
// searches need no synchronization.
type Service struct {
	catalog catalog.Source
	ranker  *ranking.Engine
	limit   int
	logger  zerolog.Logger
}

// NewService creates a search service. A nil ranker gets the default reward
// model and route table.
func NewService(src catalog.Source, ranker *ranking.Engine) *Service {
	if ranker == nil {
		ranker = ranking.NewEngine(nil)
	}
	return &Service{
		catalog: src,
		ranker:  ranker,
		limit:   DefaultResultLimit,
		logger:  zerolog.Nop(),
	}
}

// WithResultLimit overrides the response cap.
func (s *Service) WithResultLimit(n int) *Service {
	if n > 0 {
		s.limit = n
	}
	return s
}

// WithLogger attaches a logger for per-search diagnostics.
func (s *Service) WithLogger(logger zerolog.Logger) *Service {
	s.logger = logger
	return s
}

// Result is one search response. TotalMatched counts offers that survived
// the budget filter before truncation.
type Result struct {
	RequestID    uuid.UUID         `json:"request_id"`
	Mode         trip.RankMode     `json:"mode"`
	Results      []trip.RankedOffer `json:"results"`
	TotalMatched int               `json:"total_matched"`
	EvaluatedAt  time.Time         `json:"evaluated_at"`
}

// Search selects the catalog subset for the intent's goal, drops offers over
// the budget cap (equal to the budget passes), ranks what remains, truncates
// to the result limit, and attaches a rationale per surviving entry.
//
// An empty result list is a valid outcome, distinct from the error returns:
// catalog failures and unrecognized modes fail loudly.
func (s *Service) Search(ctx context.Context, intent trip.Intent, mode trip.RankMode) (*Result, error) {
	offers, err := s.catalog.Offers(ctx, intent.Goal)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	filtered := filterByBudget(offers, intent.BudgetMax)

	ranked, err := s.ranker.Rank(filtered, mode)
	if err != nil {
		return nil, err
	}

	total := len(ranked)
	if len(ranked) > s.limit {
		ranked = ranked[:s.limit]
	}
	for i := range ranked {
		ranked[i].Rationale = rationale.For(ranked[i], mode)
	}

	s.logger.Debug().
		Str("goal", string(intent.Goal)).
		Str("mode", string(mode)).
		Int("catalog_size", len(offers)).
		Int("matched", total).
		Int("returned", len(ranked)).
		Msg("search evaluated")

	return &Result{
		RequestID:    uuid.New(),
		Mode:         mode,
		Results:      ranked,
		TotalMatched: total,
		EvaluatedAt:  time.Now().UTC(),
	}, nil
}

func filterByBudget(offers []trip.Offer, budgetMax *float64) []trip.Offer {
	if budgetMax == nil {
		return offers
	}
	limit := decimal.NewFromFloat(*budgetMax)
	kept := make([]trip.Offer, 0, len(offers))
	for _, o := range offers {
		if o.Price.Amount.LessThanOrEqual(limit) {
			kept = append(kept, o)
		}
	}
	return kept
}
