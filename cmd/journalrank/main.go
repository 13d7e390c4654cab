// Copyright 2025 Poiesic Systems
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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/poiesic/journalrank"
	"github.com/poiesic/journalrank/answer"
	"github.com/poiesic/journalrank/config"
	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/ingestion"
	"github.com/poiesic/journalrank/search"
)

const configKey = "config"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	dbFlag := &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory",
	}
	userFlag := &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Journal owner",
	}
	rankFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "Ranking mode (hybrid, semantic, keyword, bm25, combined)",
		},
		&cli.IntFlag{
			Name:    "top-k",
			Aliases: []string{"k"},
			Usage:   "Maximum number of results",
		},
		&cli.Float64Flag{
			Name:  "alpha",
			Usage: "Weight of semantic similarity in hybrid mode, between 0 and 1",
		},
	}

	return &cli.App{
		Name:      "journalrank",
		Usage:     "Rank and query personal journal entries",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a single journal entry",
				ArgsUsage: "[text...]",
				Action:    addCommand,
				Flags: []cli.Flag{
					dbFlag,
					userFlag,
					&cli.StringFlag{
						Name:     "date",
						Usage:    "Entry date (YYYY-MM-DD or RFC 3339)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "day",
						Usage: "Weekday name, derived from the date if omitted",
					},
					&cli.StringFlag{
						Name:  "text",
						Usage: "Entry text, or pass it as arguments",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import journal entries from a YAML or JSON file",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag,
					userFlag,
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "File holding a list of entries with date, day and text",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of normalization workers",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries (0 disables)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List journal entries in date order",
				Action: listCommand,
				Flags: []cli.Flag{
					dbFlag,
					userFlag,
					&cli.StringFlag{
						Name:  "from",
						Usage: "First date to include (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "Last date to include (YYYY-MM-DD)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank journal entries against a query",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags:     append([]cli.Flag{dbFlag, userFlag}, rankFlags...),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the most relevant journal entries",
				ArgsUsage: "<question...>",
				Action:    askCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					userFlag,
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Chat model name",
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Attempts before falling back to the rule-based summary",
					},
				}, rankFlags...),
			},
		},
	}
}

// setup loads the configuration file and installs the default logger.
func setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = &cfg

	return setupLogger(cfg.Logging.Level)
}

func setupLogger(levelStr string) error {
	levelStr = strings.ToLower(levelStr)

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

// settings returns the loaded configuration with command flags applied.
func settings(c *cli.Context) (*config.Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		def := config.Default()
		cfg = &def
	}

	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("user") {
		cfg.User = c.String("user")
	}
	if c.IsSet("mode") {
		cfg.Search.Mode = c.String("mode")
	}
	if c.IsSet("top-k") {
		cfg.Search.TopK = c.Int("top-k")
	}
	if c.IsSet("alpha") {
		alpha := c.Float64("alpha")
		cfg.Search.Alpha = &alpha
	}
	if c.IsSet("host") {
		cfg.AI.Host = c.String("host")
	}
	if c.IsSet("model") {
		cfg.AI.Model = c.String("model")
	}
	if c.IsSet("max-attempts") {
		cfg.AI.MaxAttempts = c.Int("max-attempts")
	}
	if c.IsSet("pool-size") {
		cfg.Ingestion.PoolSize = c.Int("pool-size")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.User == "" {
		return nil, errors.New("user is required (--user or config user)")
	}
	return cfg, nil
}

func openJournal(cfg *config.Config) (*journalrank.Journal, error) {
	j, err := journalrank.Open(cfg.Database.Path, journalrank.WithAIConfig(cfg.AIConfig()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return j, nil
}

func addCommand(c *cli.Context) error {
	cfg, err := settings(c)
	if err != nil {
		return err
	}

	text := c.String("text")
	if text == "" {
		text = strings.Join(c.Args().Slice(), " ")
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	pipeline, err := j.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	draft := ingestion.Draft{Date: c.String("date"), Day: c.String("day"), Text: text}
	report, err := pipeline.Ingest(c.Context, cfg.User, []ingestion.Draft{draft})
	if err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return err
	}

	if report.Existing > 0 {
		fmt.Fprintln(c.App.Writer, "Entry already stored")
	} else {
		fmt.Fprintln(c.App.Writer, "Entry stored")
	}
	return nil
}

func importCommand(c *cli.Context) error {
	cfg, err := settings(c)
	if err != nil {
		return err
	}

	drafts, err := readDrafts(c.String("file"))
	if err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	opts := []ingestion.Option{}
	if cfg.Ingestion.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(cfg.Ingestion.PoolSize))
	}
	if interval := c.Int("report-interval"); interval > 0 {
		opts = append(opts, ingestion.WithProgress(os.Stderr, interval))
	}
	pipeline, err := j.NewIngestionPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(c.Context, cfg.User, drafts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Stored %d entries (%d already present), rejected %d\n",
		report.Stored, report.Existing, len(report.Rejected))
	for _, rej := range report.Rejected {
		fmt.Fprintf(c.App.Writer, "  %v\n", rej)
	}
	return nil
}

// readDrafts decodes a list of drafts. Files ending in .json are read as JSON,
// everything else as YAML.
func readDrafts(path string) ([]ingestion.Draft, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var drafts []ingestion.Draft
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &drafts)
	} else {
		err = yaml.Unmarshal(data, &drafts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return drafts, nil
}

func listCommand(c *cli.Context) error {
	cfg, err := settings(c)
	if err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	repo := j.EntryRepository()
	from, to := c.String("from"), c.String("to")
	var entries []*core.Entry
	if from == "" && to == "" {
		all, err := repo.GetEntriesByUser(c.Context, cfg.User)
		if err != nil {
			return err
		}
		entries = all
	} else {
		if from == "" {
			from = "0001-01-01"
		}
		if to == "" {
			to = "9999-12-31"
		}
		ranged, err := repo.GetEntriesByDateRange(c.Context, cfg.User, from, to)
		if err != nil {
			return err
		}
		entries = ranged
	}

	for _, e := range entries {
		fmt.Fprintf(c.App.Writer, "%s (%s) %s\n", e.Date, e.Day, e.Text)
	}
	return nil
}

func query(c *cli.Context) (string, error) {
	q := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if q == "" {
		return "", errors.New("query is required")
	}
	return q, nil
}

func rank(ctx context.Context, j *journalrank.Journal, cfg *config.Config, q string) ([]*core.ScoredResult, error) {
	searcher, err := j.NewSearcher(cfg.SearcherOptions()...)
	if err != nil {
		return nil, err
	}
	return searcher.Search(ctx, cfg.User, q, search.Request{
		Mode:  search.Mode(cfg.Search.Mode),
		TopK:  cfg.Search.TopK,
		Alpha: cfg.Search.Alpha,
	})
}

func searchCommand(c *cli.Context) error {
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	q, err := query(c)
	if err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	results, err := rank(c.Context, j, cfg, q)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(c.App.Writer, "No matching entries")
		return nil
	}
	fmt.Fprint(c.App.Writer, search.RenderResults(results))
	return nil
}

func askCommand(c *cli.Context) error {
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	q, err := query(c)
	if err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	results, err := rank(c.Context, j, cfg, q)
	if err != nil {
		return err
	}

	generator, err := j.NewGenerator(answer.WithMaxAttempts(cfg.AI.MaxAttempts))
	if err != nil {
		return err
	}
	ans, err := generator.Answer(c.Context, q, results)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, ans.Text)
	if len(ans.Results) > 0 {
		fmt.Fprintln(c.App.Writer)
		fmt.Fprintln(c.App.Writer, "Sources:")
		fmt.Fprint(c.App.Writer, search.RenderResults(ans.Results))
	}
	return nil
}
