package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"trip-planner/pkg/trip"
)

// LoadFile reads a JSON offer array from disk and validates every entry.
// Ingestion is the rejection point for degenerate offers, so a file with a
// zero-priced or segment-less offer fails here, not mid-ranking.
func LoadFile(path string) ([]trip.Offer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var offers []trip.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON: %w", err)
	}

	for _, o := range offers {
		if err := ValidateOffer(o); err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", path, err)
		}
	}
	return offers, nil
}
