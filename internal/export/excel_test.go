package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/searchfind/screening-engine/internal/types"
)

func sampleBulk() *types.BulkResult {
	return &types.BulkResult{
		IsValid:  true,
		JobTitle: "Senior Data Engineer",
		ScreeningResults: []types.ScreeningResult{
			{
				ApplicationID: "app-1", CandidateName: "Ada", OverallScore: 92, CandidateTier: types.TierExcellent,
				SkillsMatch: types.SkillsMatch{Score: 95}, HasCoverLetter: true,
				CoverLetterQuality: types.CoverLetterQuality{Score: 80},
			},
			{
				ApplicationID: "app-2", CandidateName: "Brian", OverallScore: 45, CandidateTier: types.TierLimited,
				RedFlags: []string{"No relevant experience", "Missing degree"},
			},
		},
		Stats: types.BulkStats{
			TotalApplications: 3,
			ValidApplications: 2,
			AverageScore:      68.5,
			TierDistribution:  map[types.CandidateTier]int{types.TierExcellent: 1, types.TierLimited: 1},
		},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteBulkXLSX(t *testing.T) {
	Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { Now = time.Now })

	var buf bytes.Buffer
	require.NoError(t, WriteBulkXLSX(&buf, sampleBulk()))
	f := openWorkbook(t, buf.Bytes())

	assert.Equal(t, []string{RankingsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(RankingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, rankingHeaders, rows[0])
	assert.Equal(t, []string{"1", "Ada", "app-1", "92", "excellent", "95", "0", "0", "0", "80"}, rows[1])
	assert.Equal(t, "-", rows[2][9])
	assert.Equal(t, "No relevant experience; Missing degree", rows[2][10])

	excellentStyle, err := f.GetCellStyle(RankingsSheet, "A2")
	require.NoError(t, err)
	limitedStyle, err := f.GetCellStyle(RankingsSheet, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, excellentStyle, limitedStyle)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	values := map[string]string{}
	for _, r := range summary {
		if len(r) == 2 {
			values[r[0]] = r[1]
		}
	}
	assert.Equal(t, "Senior Data Engineer", values["Job Title"])
	assert.Equal(t, "2026-01-02 03:04:05", values["Generated"])
	assert.Equal(t, "3", values["Total Applications"])
	assert.Equal(t, "68.5", values["Average Score"])
	assert.Equal(t, "92", values["Highest Score"])
	assert.Equal(t, "45", values["Lowest Score"])
	assert.Equal(t, "1", values["excellent (90-100)"])
	assert.Equal(t, "0", values["good (70-79)"])
}

func TestWriteBulkXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBulkXLSX(&buf, &types.BulkResult{JobTitle: "Analyst"}))
	f := openWorkbook(t, buf.Bytes())

	rows, err := f.GetRows(RankingsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	assert.Error(t, WriteBulkXLSX(&buf, nil))
}

func TestSaveBulkXLSX(t *testing.T) {
	base := filepath.Join(t.TempDir(), "report")

	path, err := SaveBulkXLSX(base, sampleBulk())
	require.NoError(t, err)
	assert.Equal(t, base+".xlsx", path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
