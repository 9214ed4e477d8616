// Package export writes bulk screening results as Excel workbooks.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/searchfind/screening-engine/internal/types"
)

// Sheet names.
const (
	RankingsSheet = "Rankings"
	SummarySheet  = "Summary"
)

var rankingHeaders = []string{
	"Rank", "Candidate", "Application ID", "Overall Score", "Tier",
	"Skills", "Experience", "Education", "Resume Quality", "Cover Letter", "Red Flags",
}

// tierFills colors a ranking row by the candidate's tier.
var tierFills = map[types.CandidateTier]string{
	types.TierExcellent: "C6EFCE",
	types.TierStrong:    "E2F0D9",
	types.TierGood:      "FFEB9C",
	types.TierPotential: "FCE4D6",
	types.TierLimited:   "FFC7CE",
	types.TierPoor:      "FF9999",
}

// Now is the clock used for the "Generated" cell.
var Now = time.Now

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteBulkXLSX writes the workbook for b to w.
func WriteBulkXLSX(w io.Writer, b *types.BulkResult) error {
	f, err := buildWorkbook(b)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveBulkXLSX writes the workbook for b to path, adding .xlsx when missing.
func SaveBulkXLSX(path string, b *types.BulkResult) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := buildWorkbook(b)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func buildWorkbook(b *types.BulkResult) (*excelize.File, error) {
	if b == nil {
		return nil, fmt.Errorf("bulk result is nil")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", RankingsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeRankings(f, b.ScreeningResults); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create rankings sheet: %w", err)
	}
	if err := writeSummary(f, b); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func writeRankings(f *excelize.File, results []types.ScreeningResult) error {
	sheet := RankingsSheet
	widths := map[string]float64{"A": 8, "B": 28, "C": 38, "D": 14, "E": 12, "K": 60}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "F", "J", 14); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	fills := make(map[types.CandidateTier]int, len(tierFills))
	for tier, color := range tierFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		fills[tier] = style
	}

	for i, h := range rankingHeaders {
		name, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, h); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(rankingHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", cell(lastCol, 1), header); err != nil {
		return err
	}

	for i, r := range results {
		row := i + 2
		values := []interface{}{
			i + 1,
			r.CandidateName,
			r.ApplicationID,
			r.OverallScore,
			string(r.CandidateTier),
			r.SkillsMatch.Score,
			r.ExperienceMatch.Score,
			r.EducationMatch.Score,
			r.ResumeQuality.Score,
			coverLetterCell(r),
			strings.Join(r.RedFlags, "; "),
		}
		if err := f.SetSheetRow(sheet, cell("A", row), &values); err != nil {
			return err
		}
		if style, ok := fills[r.CandidateTier]; ok {
			if err := f.SetCellStyle(sheet, cell("A", row), cell(lastCol, row), style); err != nil {
				return err
			}
		}
	}

	if len(results) > 0 {
		ref := fmt.Sprintf("A1:%s%d", lastCol, len(results)+1)
		if err := f.AutoFilter(sheet, ref, []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func coverLetterCell(r types.ScreeningResult) interface{} {
	if !r.HasCoverLetter {
		return "-"
	}
	return r.CoverLetterQuality.Score
}

type summaryRow struct {
	name  string
	value interface{}
}

func writeSummary(f *excelize.File, b *types.BulkResult) error {
	sheet := SummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	section := func(title string) error {
		if err := f.SetCellValue(sheet, cell("A", row), title); err != nil {
			return err
		}
		if err := f.MergeCell(sheet, cell("A", row), cell("B", row)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell("A", row), cell("B", row), header); err != nil {
			return err
		}
		row++
		return nil
	}
	pair := func(name string, value interface{}) error {
		if err := f.SetCellValue(sheet, cell("A", row), name); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell("A", row), cell("A", row), label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell("B", row), value); err != nil {
			return err
		}
		row++
		return nil
	}

	if err := section("Bulk Screening Report"); err != nil {
		return err
	}
	rows := []summaryRow{
		{"Job Title", b.JobTitle},
		{"Generated", Now().Format("2006-01-02 15:04:05")},
		{"Total Applications", b.Stats.TotalApplications},
		{"Valid Applications", b.Stats.ValidApplications},
		{"Average Score", b.Stats.AverageScore},
	}
	if n := len(b.ScreeningResults); n > 0 {
		rows = append(rows,
			summaryRow{"Highest Score", b.ScreeningResults[0].OverallScore},
			summaryRow{"Lowest Score", b.ScreeningResults[n-1].OverallScore},
		)
	}
	for _, r := range rows {
		if err := pair(r.name, r.value); err != nil {
			return err
		}
	}

	row++
	if err := section("Tier Distribution"); err != nil {
		return err
	}
	for _, tr := range types.TierRanges {
		name := fmt.Sprintf("%s (%d-%d)", tr.Tier, tr.Min, tr.Max)
		if err := pair(name, b.Stats.TierDistribution[tr.Tier]); err != nil {
			return err
		}
	}
	return nil
}
