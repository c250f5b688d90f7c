// Package batch runs the full pipeline over a folder of monthly statement
// PDFs: discover files by name, extract and parse each, then finalize and
// export everything as one combined run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gbacareza/bpi-statement-parser/internal/export"
	"github.com/gbacareza/bpi-statement-parser/internal/extract"
	"github.com/gbacareza/bpi-statement-parser/internal/finalize"
	"github.com/gbacareza/bpi-statement-parser/internal/statement"
)

// Statement PDFs are saved as "Statement BPI Master YYYY-MM-DD.pdf"; the
// embedded date is the statement date and seeds year resolution.
var statementFileRe = regexp.MustCompile(`(?i)^Statement BPI Master (\d{4}-\d{2}-\d{2})\.(pdf|txt)$`)

// StatementFile is one discovered statement, with the date lifted from its
// filename.
type StatementFile struct {
	Path string
	Date time.Time
}

// FindStatements lists statement files under dir, sorted by statement date.
// A non-zero cutoff keeps only statements dated on or after it. Files whose
// names don't match the statement pattern are ignored.
func FindStatements(dir string, cutoff time.Time) ([]StatementFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read statement dir: %w", err)
	}

	var files []StatementFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := statementFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		date, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			continue
		}
		if !cutoff.IsZero() && date.Before(cutoff) {
			continue
		}
		files = append(files, StatementFile{
			Path: filepath.Join(dir, entry.Name()),
			Date: date,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Date.Before(files[j].Date) })
	return files, nil
}

// Failure records one statement that could not be processed; the run
// continues past it.
type Failure struct {
	File string
	Err  error
}

// RunResult is the outcome of one batch run.
type RunResult struct {
	JobID        uuid.UUID
	Processed    []StatementFile
	Failed       []Failure
	Transactions []finalize.Transaction
	Summary      finalize.Summary
	Outputs      []string
}

// Processor wires extraction, parsing, finalization and export into a
// folder-level run.
type Processor struct {
	parser    *statement.Parser
	finalizer *finalize.Finalizer
	writer    *export.Writer

	extractorFor func(path string) extract.Extractor
	logger       *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithPdftotext sets the pdftotext binary used for PDF inputs.
func WithPdftotext(bin string) ProcessorOption {
	return func(p *Processor) {
		p.extractorFor = func(path string) extract.Extractor {
			return extract.ForFile(path, bin)
		}
	}
}

// WithExtractorFunc overrides extractor selection entirely.
func WithExtractorFunc(fn func(path string) extract.Extractor) ProcessorOption {
	return func(p *Processor) { p.extractorFor = fn }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = logger }
}

// NewProcessor builds a Processor around the pipeline stages.
func NewProcessor(parser *statement.Parser, finalizer *finalize.Finalizer, writer *export.Writer, opts ...ProcessorOption) *Processor {
	p := &Processor{
		parser:    parser,
		finalizer: finalizer,
		writer:    writer,
		extractorFor: func(path string) extract.Extractor {
			return extract.ForFile(path, "")
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes every statement under dir dated on or after cutoff. A file
// that fails extraction is recorded and skipped; the run only errors when
// discovery or export fails.
func (p *Processor) Run(ctx context.Context, dir string, cutoff time.Time) (*RunResult, error) {
	files, err := FindStatements(dir, cutoff)
	if err != nil {
		return nil, err
	}
	return p.RunFiles(ctx, files)
}

// RunFiles processes an already-discovered set of statements.
func (p *Processor) RunFiles(ctx context.Context, files []StatementFile) (*RunResult, error) {
	result := &RunResult{JobID: uuid.New()}
	p.logger.Info("batch run started",
		slog.String("job_id", result.JobID.String()),
		slog.Int("statements", len(files)))

	var records []statement.Record
	for _, file := range files {
		text, err := p.extractorFor(file.Path).Extract(ctx, file.Path)
		if err != nil {
			p.logger.Error("statement extraction failed",
				slog.String("file", file.Path),
				slog.Any("error", err))
			result.Failed = append(result.Failed, Failure{File: file.Path, Err: err})
			continue
		}

		parsed := p.parser.Parse(text, statement.Context{
			Year:  file.Date.Year(),
			Month: file.Date.Month(),
		})
		p.logger.Info("statement parsed",
			slog.String("file", filepath.Base(file.Path)),
			slog.Int("records", len(parsed.Records)),
			slog.Int("unknown_currencies", len(parsed.UnknownCurrencies)))

		records = append(records, parsed.Records...)
		result.Processed = append(result.Processed, file)
	}

	if len(records) == 0 {
		p.logger.Warn("batch run produced no transactions",
			slog.String("job_id", result.JobID.String()))
		return result, nil
	}

	result.Transactions = p.finalizer.Finalize(records)
	result.Summary = finalize.Summarize(result.Transactions)
	p.finalizer.LogSummary(result.Summary)

	outputs, err := p.writer.WriteAll(result.Transactions)
	result.Outputs = outputs
	if err != nil {
		return result, fmt.Errorf("write batch exports: %w", err)
	}

	p.logger.Info("batch run finished",
		slog.String("job_id", result.JobID.String()),
		slog.Int("processed", len(result.Processed)),
		slog.Int("failed", len(result.Failed)),
		slog.Int("outputs", len(result.Outputs)))
	return result, nil
}
