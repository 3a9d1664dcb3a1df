package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/gastos/pkg/config"
	"github.com/yurifrl/gastos/pkg/csv"
	"github.com/yurifrl/gastos/pkg/installments"
	"github.com/yurifrl/gastos/pkg/models"
	"github.com/yurifrl/gastos/pkg/parser"
	"github.com/yurifrl/gastos/pkg/pdftext"
	"github.com/yurifrl/gastos/pkg/report"
)

type Processor struct {
	config  *config.Config
	logger  *log.Logger
	parser  *parser.Parser
	open    pdftext.Opener
	filters Filters
	colors  bool
}

type Option func(*Processor)

// WithOpener replaces the PDF engine, mostly for tests.
func WithOpener(open pdftext.Opener) Option {
	return func(p *Processor) { p.open = open }
}

func WithFilters(f Filters) Option {
	return func(p *Processor) { p.filters = f }
}

func WithColors(enabled bool) Option {
	return func(p *Processor) { p.colors = enabled }
}

func NewProcessor(config *config.Config, logger *log.Logger, opts ...Option) *Processor {
	p := &Processor{
		config: config,
		logger: logger,
		parser: parser.New(logger),
		open:   openerFor(config),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// openerFor binds the configured engine. An unknown engine fails on the
// first statement instead of falling back to another engine.
func openerFor(cfg *config.Config) pdftext.Opener {
	engine, err := cfg.PDFEngine()
	if err != nil {
		return func(string) (pdftext.Document, error) { return nil, err }
	}
	return pdftext.OpenerFor(engine)
}

// Result is the outcome of extracting a batch of statements.
type Result struct {
	Transactions []*models.Transaction
	Installments []installments.Entry
}

// Outputs are the files written by Run.
type Outputs struct {
	CSV   string
	Chart string
}

// Extract parses every statement in order with a single installment tracker,
// so repeated installments are dropped across files.
func (p *Processor) Extract(paths []string) (*Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no statements given")
	}

	tracker := installments.NewTracker()
	var transactions []*models.Transaction
	for _, path := range paths {
		txs, err := p.extractFile(path, tracker)
		if err != nil {
			return nil, fmt.Errorf("processing %s: %w", path, err)
		}
		transactions = append(transactions, txs...)
	}

	return &Result{
		Transactions: transactions,
		Installments: tracker.Entries(),
	}, nil
}

func (p *Processor) extractFile(path string, tracker *installments.Tracker) ([]*models.Transaction, error) {
	p.logger.Info("processing file", "path", path)

	var (
		transactions []*models.Transaction
		raw          strings.Builder
	)
	err := pdftext.WalkWith(p.open, path, func(page int, text string) error {
		raw.WriteString(text)
		for c := range p.parser.Candidates(text) {
			key := c.Key()
			ok, err := tracker.Accept(key, c.Installment)
			if err != nil {
				return fmt.Errorf("page %d: %w", page+1, err)
			}
			if !ok {
				p.logger.Debug("skipping repeated installment", "merchant", key, "installment", c.Installment)
				continue
			}
			tx, err := parser.Normalize(c)
			if err != nil {
				return fmt.Errorf("page %d: %w", page+1, err)
			}
			transactions = append(transactions, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if p.config.DumpRaw && !strings.EqualFold(filepath.Ext(path), ".txt") {
		out, err := pdftext.WriteRawText(path, raw.String())
		if err != nil {
			return nil, err
		}
		p.logger.Info("raw text saved", "path", out)
	}

	p.logger.Info("processed file successfully", "path", path, "transactions", len(transactions))
	return transactions, nil
}

// OutputPaths derives the CSV and chart paths from the first statement.
func (p *Processor) OutputPaths(first string) Outputs {
	base := strings.TrimSuffix(first, filepath.Ext(first))
	if p.config.GetOutputPath() != "" {
		base = filepath.Join(p.config.GetOutputPath(), filepath.Base(base))
	}
	return Outputs{CSV: base + ".csv", Chart: base + ".jpg"}
}

// Run extracts the statements, writes the CSV, reads it back for the
// summary, draws the chart and prints the report to w.
func (p *Processor) Run(paths []string, w io.Writer) (*Outputs, error) {
	result, err := p.Extract(paths)
	if err != nil {
		return nil, err
	}

	console := report.NewConsole(w, p.colors)
	console.Installments(result.Installments)

	outputs := p.OutputPaths(paths[0])
	if dir := p.config.GetOutputPath(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating output directory: %w", err)
		}
	}

	if err := csv.WriteFile(outputs.CSV, result.Transactions, p.filters.Func()); err != nil {
		return nil, err
	}
	rows, err := csv.ReadFile(outputs.CSV)
	if err != nil {
		return nil, err
	}
	p.logger.Info("transactions saved", "path", outputs.CSV, "count", len(rows))
	summary, err := report.Summarize(rows)
	if err != nil {
		return nil, fmt.Errorf("summarizing %s: %w", outputs.CSV, err)
	}

	top := summary.Top(p.config.Top)
	console.Subscriptions(summary)
	console.Top(top)

	if !p.config.Chart {
		outputs.Chart = ""
		return &outputs, nil
	}
	if len(top) == 0 {
		p.logger.Warn("no transactions found, skipping chart")
		outputs.Chart = ""
		return &outputs, nil
	}
	if err := report.RenderChart(outputs.Chart, top); err != nil {
		return nil, err
	}
	p.logger.Info("chart saved", "path", outputs.Chart)

	return &outputs, nil
}
