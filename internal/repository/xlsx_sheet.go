package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readTable returns the data rows of the first sheet, each reordered to match columns.
// Columns are located by header, so extra or reordered columns in the file are tolerated.
// A missing file reads as an empty table.
func readTable(path string, columns []column) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	rawRows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make([]int, len(columns))
	for i := range index {
		index[i] = -1
	}
	for pos, title := range rows[0] {
		title = strings.TrimSpace(title)
		for i, col := range columns {
			if index[i] == -1 && col.matches(title) {
				index[i] = pos
				break
			}
		}
	}

	table := make([][]string, 0, len(rows)-1)
	for r := 1; r < len(rows); r++ {
		row := rows[r]
		cells := make([]string, len(columns))
		blank := true
		for i, pos := range index {
			if pos < 0 || pos >= len(row) {
				continue
			}
			cells[i] = row[pos]
			if columns[i].Raw && r < len(rawRows) && pos < len(rawRows[r]) {
				cells[i] = rawRows[r][pos]
			}
			if strings.TrimSpace(cells[i]) != "" {
				blank = false
			}
		}
		if !blank {
			table = append(table, cells)
		}
	}
	return table, nil
}

// writeTable overwrites path with a single sheet holding the header row and rows.
func writeTable(path string, columns []column, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
