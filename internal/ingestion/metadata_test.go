package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetadata(t *testing.T) {
	text := "Senior Data Engineer\nGlobex\n\nWe build analytics tools.\n\n\n- Python\n- SQL"
	m := ExtractMetadata(text)

	assert.Equal(t, 12, m.WordCount)
	assert.Equal(t, 5, m.LineCount)
	assert.Equal(t, 3, m.ParagraphCount)
	assert.Equal(t, len([]rune(text)), m.CharCount)
	assert.Len(t, m.Hash, 64)

	_, err := time.Parse(time.RFC3339, m.Timestamp)
	require.NoError(t, err)
}

func TestExtractMetadata_Empty(t *testing.T) {
	m := ExtractMetadata("")
	assert.Zero(t, m.WordCount)
	assert.Zero(t, m.LineCount)
	assert.Zero(t, m.ParagraphCount)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", m.Hash)
}

func TestExtractMetadata_HashTracksContent(t *testing.T) {
	assert.Equal(t, ExtractMetadata("Content 1").Hash, ExtractMetadata("Content 1").Hash)
	assert.NotEqual(t, ExtractMetadata("Content 1").Hash, ExtractMetadata("Content 2").Hash)
}
