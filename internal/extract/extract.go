// Package extract is the boundary to PDF text extraction. The parser core
// only ever sees the extracted text; which backend produced it is this
// package's concern, kept pluggable behind the Extractor interface.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Extractor produces the full newline-separated text of one document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Pdftotext shells out to poppler's pdftotext, which handles the statement
// PDFs better than the pure-Go readers tried before it. Layout mode keeps
// the transaction columns on one line.
type Pdftotext struct {
	// Binary is the pdftotext executable; defaults to "pdftotext" on PATH.
	Binary string
}

func (p Pdftotext) Extract(ctx context.Context, path string) (string, error) {
	bin := p.Binary
	if bin == "" {
		bin = "pdftotext"
	}

	cmd := exec.CommandContext(ctx, bin, "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext %s: %w", path, err)
	}
	return string(out), nil
}

// PlainText reads an already-extracted text file. Used for .txt inputs and
// for replaying saved extractions in tests.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}

// ForFile picks the extractor for a path by extension.
func ForFile(path string, pdftotextBin string) Extractor {
	if strings.HasSuffix(strings.ToLower(path), ".txt") {
		return PlainText{}
	}
	return Pdftotext{Binary: pdftotextBin}
}
