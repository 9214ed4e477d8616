package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/searchfind/screening-engine/internal/export"
	"github.com/searchfind/screening-engine/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// xlsxResponse renders the workbook into memory first so that an export
// failure can still be reported as JSON.
func (s *Server) xlsxResponse(w http.ResponseWriter, result *types.BulkResult) {
	var buf bytes.Buffer
	if err := export.WriteBulkXLSX(&buf, result); err != nil {
		s.logger.WithError(err).Error("failed to export bulk screening", nil)
		s.errorResponse(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	name := "screening.xlsx"
	if result.ID != "" {
		name = fmt.Sprintf("screening-%s.xlsx", result.ID)
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.WithError(err).Warn("failed to write workbook", nil)
	}
}
