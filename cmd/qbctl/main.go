package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/questionbank/internal/backend"
	"github.com/kailas-cloud/questionbank/internal/config"
	"github.com/kailas-cloud/questionbank/internal/domain"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	logpkg "github.com/kailas-cloud/questionbank/internal/logger"
	duplicateuc "github.com/kailas-cloud/questionbank/internal/usecase/duplicate"
	healthuc "github.com/kailas-cloud/questionbank/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/questionbank/internal/usecase/indexing"
	"github.com/kailas-cloud/questionbank/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qbctl",
		Usage: "Operate the question bank candidate index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Config environment (reads config/<env>.yaml)",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Report store and candidate index health",
				Action: checkCommand,
			},
			{
				Name:   "ensure-index",
				Usage:  "Create the candidate index if it does not exist",
				Action: ensureIndexCommand,
			},
			{
				Name:   "find",
				Usage:  "Run duplicate detection for a proposed question",
				Action: findCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "org",
						Usage:    "Organization of the caller",
						Required: true,
					},
					&cli.StringFlag{Name: "title", Usage: "Proposed title"},
					&cli.StringFlag{Name: "description", Usage: "Proposed description"},
					&cli.StringFlag{
						Name:     "type",
						Aliases:  []string{"t"},
						Usage:    "Question type (trueFalse, multipleChoice, fillInTheBlank, codeChallenge, codeDebugging)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "language",
						Usage:    "Question language",
						Required: true,
					},
					&cli.StringFlag{Name: "category", Usage: "Category for code questions (logic, ui, syntax)"},
					&cli.StringFlag{Name: "entry-function", Usage: "Entry function name"},
					&cli.PathFlag{Name: "code-template-file", Usage: "File holding the code template"},
				},
			},
			{
				Name:      "get",
				Usage:     "Print an indexed question",
				ArgsUsage: "<id>",
				Action:    getCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "org",
						Usage:    "Organization of the caller",
						Required: true,
					},
				},
			},
			{
				Name:  "version",
				Usage: "Print build information",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, "qbctl", version.String())
					return err //nolint:wrapcheck // terminal write
				},
			},
		},
	}
}

type session struct {
	logger *zap.Logger
	cfg    config.Config
	store  *backend.Backend
	ctx    context.Context
}

// connect loads config and opens the configured store.
func connect(c *cli.Context) (*session, error) {
	env := c.String("env")
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level := c.String("log-level")
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	ctx := logpkg.ContextWithLogger(c.Context, logger)
	store, err := backend.Open(ctx, cfg.Database, cfg.Storage.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	return &session{logger: logger, cfg: cfg, store: store, ctx: ctx}, nil
}

func (rt *session) close() {
	rt.store.Close()
	_ = rt.logger.Sync()
}

func checkCommand(c *cli.Context) error {
	rt, err := connect(c)
	if err != nil {
		return err
	}
	defer rt.close()

	report := healthuc.New(rt.store, rt.store.Repo).Check(rt.ctx)
	if err := printJSON(c, report); err != nil {
		return err
	}
	if report.Status != healthuc.Healthy {
		return cli.Exit("unhealthy: "+string(report.Status), 2)
	}
	return nil
}

func ensureIndexCommand(c *cli.Context) error {
	rt, err := connect(c)
	if err != nil {
		return err
	}
	defer rt.close()

	created, err := indexinguc.New(rt.store.Repo).EnsureIndex(rt.ctx)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the service
	}
	msg := "candidate index already exists"
	if created {
		msg = "candidate index created"
	}
	_, err = fmt.Fprintln(c.App.Writer, msg)
	return err //nolint:wrapcheck // terminal write
}

func findCommand(c *cli.Context) error {
	q, err := queryFromFlags(c)
	if err != nil {
		return err
	}
	// Reject bad input before touching the store.
	if err := duplicateuc.NewValidator().Validate(q); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	rt, err := connect(c)
	if err != nil {
		return err
	}
	defer rt.close()

	svc := duplicateuc.New(rt.store.Repo, duplicateuc.DefaultPolicy())
	matches, err := svc.FindSimilar(rt.ctx, q, domdup.AccessContext{OrganizationID: c.String("org")})
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the service
	}

	type row struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Similarity  int    `json:"similarity"`
		ExactMatch  bool   `json:"exactMatch"`
		Source      string `json:"source"`
		MatchReason string `json:"matchReason"`
	}
	rows := make([]row, len(matches))
	for i, m := range matches {
		rows[i] = row{
			ID:          m.ID,
			Title:       m.Title,
			Similarity:  m.Similarity,
			ExactMatch:  m.ExactMatch,
			Source:      string(m.Source),
			MatchReason: m.MatchReason,
		}
	}
	return printJSON(c, rows)
}

func getCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("question id is required", 1)
	}

	rt, err := connect(c)
	if err != nil {
		return err
	}
	defer rt.close()

	q, err := indexinguc.New(rt.store.Repo).Get(rt.ctx, c.String("org"), id)
	if errors.Is(err, domain.ErrNotFound) {
		return cli.Exit("question "+id+" not found", 3)
	}
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the service
	}

	type indexed struct {
		ID             string    `json:"id"`
		Title          string    `json:"title"`
		Type           string    `json:"type"`
		Language       string    `json:"language"`
		Category       string    `json:"category,omitempty"`
		OrganizationID string    `json:"organizationId,omitempty"`
		IsGlobal       bool      `json:"isGlobal"`
		CreatedAt      time.Time `json:"createdAt"`
		EntryFunction  string    `json:"entryFunction,omitempty"`
	}
	return printJSON(c, indexed{
		ID:             q.ID,
		Title:          q.Title,
		Type:           string(q.Type),
		Language:       string(q.Language),
		Category:       string(q.Category),
		OrganizationID: q.OrganizationID,
		IsGlobal:       q.IsGlobal,
		CreatedAt:      q.CreatedAt,
		EntryFunction:  q.EntryFunctionName,
	})
}

func queryFromFlags(c *cli.Context) (domdup.Query, error) {
	q := domdup.Query{
		Title:         c.String("title"),
		Description:   c.String("description"),
		Type:          question.Type(c.String("type")),
		Language:      question.Language(c.String("language")),
		Category:      question.Category(c.String("category")),
		EntryFunction: c.String("entry-function"),
	}
	if path := c.Path("code-template-file"); path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
		if err != nil {
			return domdup.Query{}, fmt.Errorf("read code template: %w", err)
		}
		q.CodeTemplate = string(data)
	}
	return q, nil
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
