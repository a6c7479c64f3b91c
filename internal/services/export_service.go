package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"dashboard/internal/domain"
	"dashboard/internal/domain/models"
	"dashboard/internal/utils"
	"dashboard/internal/view"
)

// ExportService renders the users table to PDF.
type ExportService struct {
	Dashboard DashboardService
	Now       func() time.Time
}

// exportColumn pairs a table column with its width in mm and cell accessor.
type exportColumn struct {
	label string
	width float64
	max   int
	text  func(models.User) string
}

var exportColumns = []exportColumn{
	{"Name", 50, 28, func(u models.User) string { return u.Name }},
	{"Email", 55, 32, func(u models.User) string { return u.Email }},
	{"Phone", 40, 22, func(u models.User) string { return u.Phone }},
	{"Company", 45, 26, func(u models.User) string { return u.CompanyName() }},
}

// ExportUsersPDF renders the page described by state. With all set, every
// record passing the search filter is rendered in sort order instead.
func (s ExportService) ExportUsersPDF(ctx context.Context, state view.QueryState, all bool) ([]byte, string, error) {
	state = state.Normalized()
	if all {
		state.Page = 0
		state.PageSize = 1 << 30
	}

	page := s.Dashboard.UsersTable(ctx, state)
	if page.Err != nil {
		return nil, "", page.Err
	}
	if page.Loading {
		return nil, "", domain.UnavailableError{Source: "users", Err: errors.New("still loading")}
	}

	now := s.now()
	pdfBytes, err := buildUsersPDF(page, all, now)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render users pdf", Err: err}
	}
	s.Dashboard.Metrics.IncrementExport("pdf")
	utils.LogEvent(s.Dashboard.RequestID, "export", "users_pdf",
		fmt.Sprintf("rows=%d total=%d all=%t", len(page.View.Records), page.View.Total, all))

	return pdfBytes, exportFilename(page.State.Search, now), nil
}

// exportFilename names the file after the search text when there is one.
func exportFilename(search string, now time.Time) string {
	search = utils.NormalizeSpace(search)
	if search == "" {
		return fmt.Sprintf("USERS_%s.pdf", utils.FileStamp(now))
	}
	return fmt.Sprintf("USERS_%s_%s.pdf", utils.SafeFilenamePart(search), utils.FileStamp(now))
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func buildUsersPDF(page UsersPage, all bool, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Users", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "USERS")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range summaryLines(page, all, now) {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for _, c := range exportColumns {
		pdf.CellFormat(c.width, 8, c.label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(page.View.Records) == 0 {
		pdf.CellFormat(totalWidth(), 8, page.EmptyMessage, "1", 1, "C", false, 0, "")
	}
	for _, u := range page.View.Records {
		for _, c := range exportColumns {
			cell := utils.Truncate(utils.Fallback(c.text(u), "-"), c.max)
			pdf.CellFormat(c.width, 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryLines(page UsersPage, all bool, now time.Time) []string {
	st := page.State
	lines := []string{
		"Generated  : " + utils.FormatDateTime(now),
		"Search     : " + utils.Fallback(utils.NormalizeSpace(st.Search), "-"),
		fmt.Sprintf("Sort       : %s %s", utils.Fallback(st.SortKey, "-"), st.Direction),
		fmt.Sprintf("Matches    : %d", page.View.Total),
	}
	if !all {
		pages := domain.NewPagination(st.Page, st.PageSize, page.View.Total).TotalPages
		lines = append(lines, fmt.Sprintf("Page       : %d of %d", st.Page+1, max(pages, 1)))
	}
	return lines
}

func totalWidth() float64 {
	var w float64
	for _, c := range exportColumns {
		w += c.width
	}
	return w
}
