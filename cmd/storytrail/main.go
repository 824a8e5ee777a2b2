// Copyright 2025 StoryTrail Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	storytrail "github.com/storytrail/storytrail"
	"github.com/storytrail/storytrail/config"
	"github.com/storytrail/storytrail/ingestion"
	"github.com/storytrail/storytrail/reindex"
	"github.com/storytrail/storytrail/server"
)

func main() {
	app := &cli.App{
		Name:  "storytrail",
		Usage: "Session-scoped multimodal media indexing and search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "storytrail.yaml",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides config)",
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Ingest media files into a session",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "session",
						Aliases: []string{"s"},
						Usage:   "Session ID (a fresh one is minted if omitted)",
					},
					&cli.StringSliceFlag{
						Name:    "image",
						Aliases: []string{"i"},
						Usage:   "Image file to ingest (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:    "video",
						Aliases: []string{"v"},
						Usage:   "Video file to ingest (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:    "text-file",
						Aliases: []string{"t"},
						Usage:   "Text file to ingest (repeatable)",
					},
					&cli.StringFlag{
						Name:  "text",
						Usage: "Inline text to ingest",
					},
					&cli.DurationFlag{
						Name:  "cadence",
						Usage: "Frame sampling cadence (overrides config)",
					},
					&cli.IntFlag{
						Name:  "max-frames",
						Usage: "Maximum frames per video (overrides config)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search a collection with a text query",
				Action:    searchCommand,
				ArgsUsage: "QUERY",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Collection to search (texts, photos, videos)",
						Value: "texts",
					},
					&cli.IntFlag{
						Name:    "n-results",
						Aliases: []string{"n"},
						Usage:   "Number of results to return",
						Value:   5,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed all stored entries with the configured embedding model",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Restrict the run to one collection (texts, photos, videos)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	lib, err := storytrail.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	pipeline, err := lib.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	searcher, err := lib.NewSearcher()
	if err != nil {
		return err
	}

	srv, err := server.New(pipeline, searcher, lib.Index(),
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func ingestCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	session := c.String("session")
	if session == "" {
		session = server.NewSessionID()
	}

	lib, err := storytrail.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	pipeline, err := lib.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	summary, err := pipeline.Ingest(c.Context, &ingestion.Request{
		SessionID:  session,
		Images:     c.StringSlice("image"),
		Videos:     c.StringSlice("video"),
		TextFiles:  c.StringSlice("text-file"),
		DirectText: c.String("text"),
		Cadence:    c.Duration("cadence"),
		MaxFrames:  c.Int("max-frames"),
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	return printJSON(summary)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	lib, err := storytrail.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	searcher, err := lib.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.Search(c.Context, query, c.String("collection"), c.Int("n-results"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return printJSON(results)
}

func reindexCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	reindexConfig := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Collection:     c.String("collection"),
	}

	if reindexConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reindexConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reindexConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	lib, err := storytrail.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	fmt.Fprintf(os.Stderr, "Index: %s\n", cfg.Storage.IndexDir)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", cfg.AI.Host)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", cfg.AI.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	if err := lib.NewReindexer(reindexConfig, os.Stderr).Run(c.Context); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setup(c *cli.Context) error {
	// A missing .env file is fine; environment variables still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "err", err)
	}

	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
