// internal/app/features/shiftgrid/export.go
package shiftgrid

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"github.com/dalemusser/wardshift/internal/app/system/shiftstyle"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ServeExport handles GET /schedule/{dept}/{ym}/export.xlsx.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	dept, ym, ok := params(w, r)
	if !ok {
		return
	}
	view := BuildView(h.Months.LoadMonth(r.Context(), dept, ym), h.Loc, h.Now())

	data, err := WriteXLSX(view)
	if err != nil {
		h.ErrLog.Internal(w, r, "export failed", err,
			zap.String("department", dept),
			zap.String("year_month", ym.String()))
		return
	}

	name := fmt.Sprintf("shifts-%s-%s-%s.xlsx", fileSafe(dept), ym, uuid.NewString()[:8])
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)

	requestid.Logger(r.Context(), h.Log).Info("shift grid exported",
		zap.String("department", dept),
		zap.String("year_month", ym.String()),
		zap.Int("bytes", len(data)))
}

// WriteXLSX renders the grid as a workbook: one sheet named after the month,
// two rows per staff member (top and bottom slot), one column per day. Each
// drawn slot carries its resolved colors.
func WriteXLSX(v View) ([]byte, error) {
	f := excelize.NewFile()

	sheet := v.YearMonth
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	days := 0
	if len(v.Rows) > 0 {
		days = len(v.Rows[0].Cells)
	} else {
		for _, week := range v.Weeks {
			for _, d := range week {
				if d.InMonth {
					days++
				}
			}
		}
	}

	headers := []string{"Name", "Role", "Slot"}
	for d := 1; d <= days; d++ {
		headers = append(headers, strconv.Itoa(d))
	}
	for col, text := range headers {
		if err := setCell(f, sheet, col+1, 1, text, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	styles := map[string]int{}
	styleFor := func(d *shiftstyle.Display) (int, error) {
		key := d.BackgroundColor + "/" + d.TextColor
		if id, ok := styles[key]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Color: d.TextColor},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{d.BackgroundColor}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return 0, fmt.Errorf("create cell style %s: %w", key, err)
		}
		styles[key] = id
		return id, nil
	}

	row := 2
	for _, rv := range v.Rows {
		for _, slot := range []string{"top", "bottom"} {
			if err := setCell(f, sheet, 1, row, rv.Staff.Name, 0); err != nil {
				f.Close()
				return nil, err
			}
			if err := setCell(f, sheet, 2, row, rv.Staff.Role, 0); err != nil {
				f.Close()
				return nil, err
			}
			if err := setCell(f, sheet, 3, row, slot, 0); err != nil {
				f.Close()
				return nil, err
			}
			for _, c := range rv.Cells {
				d := c.Top
				if slot == "bottom" {
					d = c.Bottom
				}
				if d == nil {
					continue
				}
				id, err := styleFor(d)
				if err != nil {
					f.Close()
					return nil, err
				}
				if err := setCell(f, sheet, 4+c.DayIndex, row, d.Label, id); err != nil {
					f.Close()
					return nil, err
				}
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		f.Close()
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      3,
		YSplit:      1,
		TopLeftCell: "D2",
		ActivePane:  "bottomRight",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell writes value at (col,row); style 0 leaves the default style.
func setCell(f *excelize.File, sheet string, col, row int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	if style != 0 {
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("style cell %s: %w", cell, err)
		}
	}
	return nil
}

// fileSafe keeps letters, digits, '-' and '_' for use in a download name.
func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "ward"
	}
	return b.String()
}
