// tripplan - trip planning demo CLI
//
// Usage:
//   tripplan parse --prompt "status run under 5,000 HKD"
//   tripplan search --prompt "..." --mode qpoints_per_hkd
//   tripplan search --intent intent.json --mode cheapest --format json
//   tripplan serve --port 4000
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	httpapi "trip-planner/api"
	"trip-planner/catalog"
	"trip-planner/db/postgres"
	"trip-planner/decision/intent"
	"trip-planner/decision/search"
	"trip-planner/pkg/platform"
	"trip-planner/pkg/trip"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	app := &cli.App{
		Name:    "tripplan",
		Usage:   "Trip planning demo - rank travel offers by price, duration, or Qpoints value",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Commands: []*cli.Command{
			parseCommand(),
			searchCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// PARSE COMMAND
// =============================================================================

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Turn a free-text travel prompt into a structured intent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "prompt",
				Aliases:  []string{"p"},
				Usage:    "Free-text travel request",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			parsed, err := intent.Parse(c.String("prompt"))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(parsed)
		},
	}
}

// =============================================================================
// SEARCH COMMAND
// =============================================================================

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Rank catalog offers for an intent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "prompt",
				Aliases: []string{"p"},
				Usage:   "Free-text travel request (parsed into an intent)",
			},
			&cli.StringFlag{
				Name:    "intent",
				Aliases: []string{"i"},
				Usage:   "Path to an intent JSON file (overrides --prompt)",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   "cheapest",
				Usage:   "Rank mode (cheapest, shortest, qpoints_per_hkd, weekend)",
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Path to an offers JSON file (default: built-in demo catalog)",
				EnvVars: []string{"TRIPPLAN_CATALOG"},
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: search.DefaultResultLimit,
				Usage: "Maximum number of results",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
		},
		Action: runSearch,
	}
}

func runSearch(c *cli.Context) error {
	in, err := resolveIntent(c)
	if err != nil {
		return err
	}

	mode, err := trip.ParseRankMode(c.String("mode"))
	if err != nil {
		return err
	}

	var src catalog.Source = catalog.NewMemorySource()
	if path := c.String("catalog"); path != "" {
		offers, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}
		src, err = catalog.NewStaticSource(offers)
		if err != nil {
			return err
		}
	}

	svc := search.NewService(src, nil).WithResultLimit(c.Int("limit"))
	result, err := svc.Search(c.Context, in, mode)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return outputTable(result)
	}
}

func resolveIntent(c *cli.Context) (trip.Intent, error) {
	if path := c.String("intent"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return trip.Intent{}, fmt.Errorf("failed to read intent file: %w", err)
		}
		var in trip.Intent
		if err := json.Unmarshal(data, &in); err != nil {
			return trip.Intent{}, fmt.Errorf("invalid intent JSON: %w", err)
		}
		intent.Normalize(&in)
		if err := intent.Validate(in); err != nil {
			return trip.Intent{}, err
		}
		return in, nil
	}
	if prompt := c.String("prompt"); prompt != "" {
		return intent.Parse(prompt)
	}
	return trip.Intent{}, fmt.Errorf("either --prompt or --intent is required")
}

func outputTable(result *search.Result) error {
	fmt.Printf("\n✈️  %d of %d offers (mode: %s)\n\n", len(result.Results), result.TotalMatched, result.Mode)

	if len(result.Results) == 0 {
		fmt.Println("No offers matched the request.")
		return nil
	}

	fmt.Printf("%-4s %-22s %-12s %-10s %-8s %-10s %s\n",
		"#", "OFFER", "PRICE", "DURATION", "QPOINTS", "QPTS/UNIT", "RATIONALE")
	for i, entry := range result.Results {
		fmt.Printf("%-4d %-22s %-12s %-10s %-8d %-10.3f %s\n",
			i+1,
			entry.Offer.ID,
			entry.Offer.Price.Amount.String()+" "+entry.Offer.Price.Currency,
			fmt.Sprintf("%d min", entry.Offer.TotalDurationMin),
			entry.Qpoints,
			entry.QPerHKD,
			entry.Rationale,
		)
	}
	return nil
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   4000,
				Usage:   "Listen port",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "catalog-backend",
				Value:   "memory",
				Usage:   "Catalog backend (memory, postgres)",
				EnvVars: []string{"CATALOG_BACKEND"},
			},
			&cli.StringFlag{
				Name:    "postgres-host",
				Value:   "localhost",
				Usage:   "Postgres host",
				EnvVars: []string{"POSTGRES_HOST"},
			},
			&cli.IntFlag{
				Name:    "postgres-port",
				Value:   5432,
				Usage:   "Postgres port",
				EnvVars: []string{"POSTGRES_PORT"},
			},
			&cli.StringFlag{
				Name:    "postgres-database",
				Value:   "tripplanner",
				Usage:   "Postgres database",
				EnvVars: []string{"POSTGRES_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "postgres-user",
				Value:   "postgres",
				Usage:   "Postgres user",
				EnvVars: []string{"POSTGRES_USER"},
			},
			&cli.StringFlag{
				Name:    "postgres-password",
				Value:   "",
				Usage:   "Postgres password",
				EnvVars: []string{"POSTGRES_PASSWORD"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	logger := platform.InitLogger()

	var src catalog.Source
	switch c.String("catalog-backend") {
	case "postgres":
		store, err := postgres.NewStore(&postgres.Config{
			Host:     c.String("postgres-host"),
			Port:     c.Int("postgres-port"),
			Database: c.String("postgres-database"),
			Username: c.String("postgres-user"),
			Password: c.String("postgres-password"),
			SSLMode:  "disable",
		})
		if err != nil {
			return fmt.Errorf("failed to connect to postgres catalog: %w", err)
		}
		defer store.Close()
		src = store
	default:
		src = catalog.NewMemorySource()
	}

	cfg := httpapi.DefaultConfig()
	cfg.Port = c.Int("port")

	svc := search.NewService(src, nil).WithLogger(logger)
	return httpapi.NewServer(svc, cfg, logger).StartWithGracefulShutdown()
}
