package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/searchfind/screening-engine/internal/fetch"
)

// Supported formats, keyed by lowercased file extension.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatDOCX     = "docx"
	FormatPDF      = "pdf"
)

var formatsByExtension = map[string]string{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".docx":     FormatDOCX,
	".pdf":      FormatPDF,
}

// decodeText returns data as UTF-8. Bytes that are not valid UTF-8 are read
// as ISO-8859-1.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode text as latin-1")
	}
	return string(decoded), nil
}

func htmlText(data []byte) (string, error) {
	raw, err := decodeText(data)
	if err != nil {
		return "", err
	}
	text, err := fetch.ExtractMainText(raw, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to extract HTML text")
	}
	return text, nil
}

// docxText reads the paragraphs of word/document.xml inside a DOCX archive.
// Each paragraph becomes one line; tabs and line breaks are kept.
func docxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "failed to open DOCX archive")
	}

	var body *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("DOCX archive has no word/document.xml")
	}

	rc, err := body.Open()
	if err != nil {
		return "", errors.Wrap(err, "failed to open word/document.xml")
	}
	defer func() { _ = rc.Close() }()

	var out strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to parse word/document.xml")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return out.String(), nil
}
