package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kerbaras/logolink/pkg/config"
	"github.com/kerbaras/logolink/pkg/data"
	"github.com/kerbaras/logolink/pkg/sources"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Ledger records completed runs.
type Ledger interface {
	SaveRun(ctx context.Context, run *data.Run) error
}

// Controller runs the load, inventory, update and save pipeline.
type Controller struct {
	fs     afero.Fs
	cfg    *config.Config
	source sources.Source
	ledger Ledger
	logger *zap.Logger
	now    func() time.Time
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLedger records every run in ledger.
func WithLedger(ledger Ledger) Option {
	return func(c *Controller) { c.ledger = ledger }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithSource replaces the logos directory listing.
func WithSource(source sources.Source) Option {
	return func(c *Controller) { c.source = source }
}

// NewController creates a controller working on fs with cfg.
func NewController(fs afero.Fs, cfg *config.Config, opts ...Option) *Controller {
	c := &Controller{
		fs:     fs,
		cfg:    cfg,
		source: sources.NewDirectory(fs, cfg.LogosDir),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the controller's configuration.
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// Load reads the document and the logo inventory.
func (c *Controller) Load(ctx context.Context) (*data.Document, sources.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, err := data.LoadDocument(c.fs, c.cfg.Document)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Debug("Loaded document",
		zap.String("path", c.cfg.Document),
		zap.Int("chapters", len(doc.Chapters)))

	inv, err := c.source.Inventory()
	if err != nil {
		return nil, nil, err
	}
	c.logger.Debug("Built logo inventory",
		zap.String("dir", c.cfg.LogosDir),
		zap.Int("logos", inv.Len()))

	return doc, inv, nil
}

// Plan computes the updated document and report without writing anything.
func (c *Controller) Plan(ctx context.Context) (*data.Document, data.Report, error) {
	doc, inv, err := c.Load(ctx)
	if err != nil {
		return nil, data.Report{}, err
	}
	updated, report, err := UpdateLogos(doc, inv, c.cfg.Prefix)
	if err != nil {
		return nil, data.Report{}, fmt.Errorf("failed to update logos: %w", err)
	}
	return updated, report, nil
}

// Run executes the pipeline. The document is written back unless the
// configuration asks for a dry run. Ledger failures are logged, not returned.
func (c *Controller) Run(ctx context.Context) (data.Report, error) {
	started := c.now()

	doc, report, err := c.Plan(ctx)
	if err != nil {
		return data.Report{}, err
	}

	if c.cfg.DryRun {
		c.logger.Debug("Dry run, document not written", zap.String("path", c.cfg.Document))
	} else {
		if err := ctx.Err(); err != nil {
			return data.Report{}, err
		}
		if err := data.SaveDocument(c.fs, c.cfg.Document, doc); err != nil {
			return data.Report{}, err
		}
		c.logger.Debug("Saved document", zap.String("path", c.cfg.Document))
	}

	if c.ledger != nil {
		run := &data.Run{
			StartedAt: started,
			Document:  c.cfg.Document,
			LogosDir:  c.cfg.LogosDir,
			DryRun:    c.cfg.DryRun,
			Report:    report,
		}
		if err := c.ledger.SaveRun(ctx, run); err != nil {
			c.logger.Warn("Failed to record run in ledger", zap.Error(err))
		} else {
			c.logger.Debug("Recorded run", zap.String("id", run.ID))
		}
	}

	return report, nil
}
