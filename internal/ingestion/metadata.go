package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Metadata describes an ingested document.
type Metadata struct {
	Source         string `json:"source,omitempty" yaml:"source,omitempty"`
	Format         string `json:"format,omitempty" yaml:"format,omitempty"`
	Platform       string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Rendered       bool   `json:"rendered,omitempty" yaml:"rendered,omitempty"`
	WordCount      int    `json:"word_count" yaml:"word_count"`
	LineCount      int    `json:"line_count" yaml:"line_count"`
	ParagraphCount int    `json:"paragraph_count" yaml:"paragraph_count"`
	CharCount      int    `json:"char_count" yaml:"char_count"`
	Hash           string `json:"hash" yaml:"hash"`
	Timestamp      string `json:"timestamp" yaml:"timestamp"`
}

// ExtractMetadata counts the words, non-blank lines and paragraphs of text
// and fingerprints it with SHA-256.
func ExtractMetadata(text string) *Metadata {
	m := &Metadata{
		WordCount: len(strings.Fields(text)),
		CharCount: len([]rune(text)),
		Hash:      computeHash(text),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	inParagraph := false
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			inParagraph = false
			continue
		}
		m.LineCount++
		if !inParagraph {
			m.ParagraphCount++
			inParagraph = true
		}
	}
	return m
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
