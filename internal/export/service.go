// Package export renders a batch verification run as an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gabrielerendina/simulator-poste-sub000/constants"
	"github.com/gabrielerendina/simulator-poste-sub000/internal/verify"
)

// Service produces XLSX bytes for verification reports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BatchXLSX returns a workbook with one row per result plus a summary sheet.
func (s *Service) BatchXLSX(batch *verify.BatchResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := s.writeResults(f, batch); err != nil {
		return nil, err
	}
	if err := s.writeSummary(f, batch.Summary); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", batch.RunID.String(),
		"rows", len(batch.Results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeResults(f *excelize.File, batch *verify.BatchResult) error {
	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Filename",
		"Requirement",
		"Holder (filename)",
		"Status",
		"Vendor",
		"Certification",
		"Code",
		"Valid From",
		"Valid Until",
		"Holder (detected)",
		"Confidence",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, r := range batch.Results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.Filename)
		write(2, r.ReqCode)
		write(3, r.ResourceName)
		write(4, string(r.Status))
		write(5, r.VendorDetected)
		write(6, r.CertNameDetected)
		write(7, r.CertCodeDetected)
		write(8, fmtDate(r.ValidFrom))
		write(9, fmtDate(r.ValidUntil))
		write(10, r.ResourceNameDetected)
		write(11, fmt.Sprintf("%.2f", r.Confidence))
		write(12, joinNotes(r.Errors))
	}

	_ = f.SetColWidth(sheet, "A", "A", 44) // filename
	_ = f.SetColWidth(sheet, "B", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "G", 24)
	_ = f.SetColWidth(sheet, "H", "I", 12)
	_ = f.SetColWidth(sheet, "J", "J", 24)
	_ = f.SetColWidth(sheet, "L", "L", 60) // notes
	return nil
}

func (s *Service) writeSummary(f *excelize.File, summary *verify.Summary) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	// excelize seeds a default sheet we never use
	_ = f.DeleteSheet("Sheet1")
	if summary == nil {
		return nil
	}

	row := 1
	write := func(a, b any) {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, cellA, a)
		_ = f.SetCellValue(sheet, cellB, b)
		row++
	}

	write("Total documents", summary.Total)
	row++
	write("Status", "Count")
	for _, st := range constants.AllStatuses {
		if n := summary.ByStatus[st]; n > 0 {
			write(string(st), n)
		}
	}
	row++
	write("Requirement", "Valid / Total")
	for _, key := range sortedKeys(summary.ByRequirement) {
		t := summary.ByRequirement[key]
		write(key, fmt.Sprintf("%d / %d", t.Valid, t.Total))
	}
	row++
	write("Holder", "Valid / Total")
	for _, key := range sortedKeys(summary.ByResource) {
		t := summary.ByResource[key]
		write(key, fmt.Sprintf("%d / %d", t.Valid, t.Total))
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "B", 16)
	return nil
}

func sortedKeys(m map[string]*verify.Tally) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func joinNotes(notes []string) string {
	out := ""
	for i, n := range notes {
		if i > 0 {
			out += "; "
		}
		out += n
	}
	return out
}
