// Package ingestion turns uploaded files and job posting URLs into clean
// text for the analyzers.
package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/searchfind/screening-engine/internal/fetch"
	"github.com/searchfind/screening-engine/internal/logging"
)

// DefaultMaxFileBytes is the largest document accepted by default.
const DefaultMaxFileBytes = 10 << 20

// Options configures a Parser. Nil fields get defaults; without a Fetcher
// the parser cannot ingest URLs.
type Options struct {
	Fetcher      *fetch.Fetcher
	Logger       logging.Logger
	MaxFileBytes int64
}

// Parser extracts plain text from documents. It is safe for concurrent use.
type Parser struct {
	fetcher  *fetch.Fetcher
	logger   logging.Logger
	maxBytes int64
}

// NewParser returns a Parser built from opts.
func NewParser(opts Options) *Parser {
	p := &Parser{fetcher: opts.Fetcher, logger: opts.Logger, maxBytes: opts.MaxFileBytes}
	if p.logger == nil {
		p.logger = logging.NewNoOpLogger()
	}
	if p.maxBytes <= 0 {
		p.maxBytes = DefaultMaxFileBytes
	}
	return p
}

// SupportedExtensions lists the file extensions ParseBytes can read.
func SupportedExtensions() []string {
	var exts []string
	for ext, format := range formatsByExtension {
		if format != FormatPDF {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// FormatOf returns the format for filename's extension, or "" when the
// extension is unknown.
func FormatOf(filename string) string {
	return formatsByExtension[strings.ToLower(filepath.Ext(filename))]
}

// ParseBytes extracts the text of an uploaded document. The format is
// chosen by filename's extension.
func (p *Parser) ParseBytes(data []byte, filename string) (string, error) {
	if int64(len(data)) > p.maxBytes {
		return "", errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", filename, len(data), p.maxBytes)
	}

	var (
		raw string
		err error
	)
	switch format := FormatOf(filename); format {
	case FormatText, FormatMarkdown:
		raw, err = decodeText(data)
	case FormatHTML:
		raw, err = htmlText(data)
	case FormatDOCX:
		raw, err = docxText(data)
	case FormatPDF:
		return "", errors.Wrap(ErrUnsupportedFormat, "PDF text extraction is not available")
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "extension %q", filepath.Ext(filename))
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", filename)
	}

	text := CleanText(raw)
	p.logger.Debug("document parsed", map[string]interface{}{
		"file_name": filename,
		"bytes":     len(data),
		"chars":     len(text),
	})
	return text, nil
}

// ParseFile reads the document at path and extracts its text.
func (p *Parser) ParseFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(err, "file not found: %s", path)
		}
		return "", errors.Wrapf(err, "failed to stat %s", path)
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", path)
	}
	if info.Size() > p.maxBytes {
		return "", errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", path, info.Size(), p.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return p.ParseBytes(data, filepath.Base(path))
}

// ParseURL fetches a job posting and returns its cleaned text with
// metadata about where it came from.
func (p *Parser) ParseURL(ctx context.Context, url string) (string, *Metadata, error) {
	if p.fetcher == nil {
		return "", nil, ErrNoURLSupport
	}
	page, err := p.fetcher.JobPosting(ctx, url)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to fetch %s", url)
	}

	text := CleanText(page.Text)
	meta := ExtractMetadata(text)
	meta.Source = url
	meta.Format = FormatHTML
	meta.Platform = string(page.Platform)
	meta.Rendered = page.Rendered

	p.logger.Info("job posting ingested", map[string]interface{}{
		"url":        url,
		"platform":   meta.Platform,
		"words":      meta.WordCount,
		"from_cache": page.FromCache,
	})
	return text, meta, nil
}
