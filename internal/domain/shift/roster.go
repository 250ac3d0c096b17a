package shift

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sbarcore/handoff/pkg/civil"
)

// XLSXContentType is the media type of roster workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const rosterSheet = "Roster"

// RosterHeader is the first row of a roster workbook.
var RosterHeader = []string{"Date", "Shift Period", "Nurse In Charge"}

// RosterRow is one data row of an uploaded roster, as text.
type RosterRow struct {
	Row           int
	Date          string
	ShiftPeriod   string
	NurseInCharge string
}

// RosterTemplate builds an empty roster workbook with the header row.
func RosterTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(rosterSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	widths := []float64{14, 18, 30}
	for i, title := range RosterHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(rosterSheet, cell, title); err != nil {
			return nil, fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(rosterSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %s: %w", cell, err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(rosterSheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseRoster reads the first sheet of an XLSX workbook. Columns are found by
// header title in any order; blank rows are skipped. Date cells may hold
// either YYYY-MM-DD text or a spreadsheet date.
func ParseRoster(r io.Reader) ([]RosterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook is empty")
	}

	cols := make(map[string]int, len(RosterHeader))
	for i, title := range rows[0] {
		cols[normalizeHeader(title)] = i
	}
	for _, title := range RosterHeader {
		if _, ok := cols[normalizeHeader(title)]; !ok {
			return nil, fmt.Errorf("missing column %q", title)
		}
	}

	cell := func(row []string, title string) string {
		i := cols[normalizeHeader(title)]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := []RosterRow{}
	for i, row := range rows[1:] {
		rr := RosterRow{
			Row:           i + 2,
			Date:          excelDate(cell(row, "Date")),
			ShiftPeriod:   cell(row, "Shift Period"),
			NurseInCharge: cell(row, "Nurse In Charge"),
		}
		if rr.Date == "" && rr.ShiftPeriod == "" && rr.NurseInCharge == "" {
			continue
		}
		out = append(out, rr)
	}
	return out, nil
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// excelDate turns a raw date serial into YYYY-MM-DD and leaves any other
// text unchanged.
func excelDate(raw string) string {
	if raw == "" {
		return ""
	}
	if _, err := civil.ParseDate(raw); err == nil {
		return raw
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return civil.DateOf(t).String()
}
