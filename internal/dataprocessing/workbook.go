package dataprocessing

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadWorkbook reads an .xlsx document into a Table. The first sheet that has
// a non-empty header row is used; rows whose cells are all blank are skipped.
// Cell text is taken as Excel displays it, so large identifiers may arrive in
// scientific notation and are recovered later by ExpandScientific.
func LoadWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read rows of sheet %q: %w", name, err)
		}
		if len(rows) == 0 || isBlankRow(rows[0]) {
			continue
		}

		data := make([][]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			if isBlankRow(row) {
				continue
			}
			fields := make([]string, len(row))
			for i, cell := range row {
				fields[i] = strings.TrimSpace(cell)
			}
			data = append(data, fields)
		}
		return newTable(0, rows[0], data), nil
	}

	return &Table{}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
