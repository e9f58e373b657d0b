// Package postgres adapts an external Postgres offer catalog to the
// catalog.Source interface. The data is owned by whatever loads it into the
// database; this store only reads, validates at ingestion, and never writes
// back derived values.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"trip-planner/catalog"
	"trip-planner/pkg/trip"
)

// Config holds Postgres connection configuration.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
}

// DefaultConfig returns default development configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		Database: "tripplanner",
		Username: "postgres",
		Password: "",
		SSLMode:  "disable",
	}
}

func (c *Config) dsn() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode)
}

// Store implements catalog.Source over Postgres.
type Store struct {
	db *sql.DB
}

// NewStore opens a connection pool and verifies connectivity.
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Ping checks connectivity, for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the catalog tables when absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS offers (
    id                 TEXT PRIMARY KEY,
    goal               TEXT NOT NULL,
    amount             NUMERIC NOT NULL,
    currency           TEXT NOT NULL,
    total_duration_min INTEGER NOT NULL,
    stops              INTEGER NOT NULL,
    weekend_fit        BOOLEAN NOT NULL DEFAULT FALSE,
    notes              TEXT NOT NULL DEFAULT '',
    sort_order         INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS segments (
    offer_id    TEXT NOT NULL REFERENCES offers(id) ON DELETE CASCADE,
    seq         INTEGER NOT NULL,
    from_code   TEXT NOT NULL,
    to_code     TEXT NOT NULL,
    dep         TEXT NOT NULL,
    arr         TEXT NOT NULL,
    carrier     TEXT NOT NULL,
    flight_no   TEXT NOT NULL,
    cabin       TEXT NOT NULL,
    distance_km DOUBLE PRECISION,
    PRIMARY KEY (offer_id, seq)
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure catalog schema: %w", err)
	}
	return nil
}

// Seed loads a goal's offer set, replacing any previous rows for that goal.
// Offers are validated before anything is written.
func (s *Store) Seed(ctx context.Context, goal trip.Goal, offers []trip.Offer) error {
	for _, o := range offers {
		if err := catalog.ValidateOffer(o); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM offers WHERE goal = $1`, string(goal)); err != nil {
		return fmt.Errorf("failed to clear goal %s: %w", goal, err)
	}

	for i, o := range offers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO offers (id, goal, amount, currency, total_duration_min, stops, weekend_fit, notes, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			o.ID, string(goal), o.Price.Amount, o.Price.Currency,
			o.TotalDurationMin, o.Stops, o.WeekendFit, o.Notes, i,
		); err != nil {
			return fmt.Errorf("failed to insert offer %s: %w", o.ID, err)
		}
		for seq, seg := range o.Itinerary {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO segments (offer_id, seq, from_code, to_code, dep, arr, carrier, flight_no, cabin, distance_km)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				o.ID, seq, seg.From, seg.To, seg.Departure, seg.Arrival,
				seg.Carrier, seg.FlightNo, string(seg.Cabin), seg.DistanceKm,
			); err != nil {
				return fmt.Errorf("failed to insert segment %d of %s: %w", seq, o.ID, err)
			}
		}
	}

	return tx.Commit()
}

// Offers returns the catalog subset for a goal in seed order, which is the
// ranking engine's tie-break order.
func (s *Store) Offers(ctx context.Context, goal trip.Goal) ([]trip.Offer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, currency, total_duration_min, stops, weekend_fit, notes
		 FROM offers WHERE goal = $1 ORDER BY sort_order, id`, string(goal))
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var (
		offers []trip.Offer
		ids    []string
		index  = make(map[string]int)
	)
	for rows.Next() {
		var o trip.Offer
		if err := rows.Scan(&o.ID, &o.Price.Amount, &o.Price.Currency,
			&o.TotalDurationMin, &o.Stops, &o.WeekendFit, &o.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		index[o.ID] = len(offers)
		ids = append(ids, o.ID)
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("offer row iteration failed: %w", err)
	}
	if len(offers) == 0 {
		return nil, nil
	}

	segRows, err := s.db.QueryContext(ctx,
		`SELECT offer_id, from_code, to_code, dep, arr, carrier, flight_no, cabin, distance_km
		 FROM segments WHERE offer_id = ANY($1) ORDER BY offer_id, seq`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer segRows.Close()

	for segRows.Next() {
		var (
			offerID string
			seg     trip.Segment
			km      sql.NullFloat64
		)
		if err := segRows.Scan(&offerID, &seg.From, &seg.To, &seg.Departure, &seg.Arrival,
			&seg.Carrier, &seg.FlightNo, &seg.Cabin, &km); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		if km.Valid {
			seg.DistanceKm = &km.Float64
		}
		i, ok := index[offerID]
		if !ok {
			continue
		}
		offers[i].Itinerary = append(offers[i].Itinerary, seg)
	}
	if err := segRows.Err(); err != nil {
		return nil, fmt.Errorf("segment row iteration failed: %w", err)
	}

	// Rows that violate the ingestion contract never leave the adapter.
	for _, o := range offers {
		if err := catalog.ValidateOffer(o); err != nil {
			return nil, err
		}
	}
	return offers, nil
}
