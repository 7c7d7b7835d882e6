package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"org_diagnostics/internal/model"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

var ErrNoDatasets = errors.New("no datasets to write")

// Write 每个 Dataset 写成一张工作表，首行为表头
func Write(datasets []model.Dataset) ([]byte, error) {
	if len(datasets) == 0 {
		return nil, ErrNoDatasets
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, ds := range datasets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, ds.Name); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", ds.Name, err)
			}
		} else if _, err := f.NewSheet(ds.Name); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", ds.Name, err)
		}

		if err := writeSheet(f, ds, headerStyle); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", ds.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, ds model.Dataset, headerStyle int) error {
	header := make([]interface{}, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(ds.Name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(ds.Name, 1, 1, headerStyle); err != nil {
		return err
	}

	for r, row := range ds.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(ds.Name, cell, &values); err != nil {
			return err
		}
	}

	if len(ds.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(ds.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ds.Name, "A", last, 24); err != nil {
			return err
		}
	}
	return nil
}

// Read 读回工作簿，单元格值均为字符串
func Read(data []byte) ([]model.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.Dataset
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}

		ds := model.Dataset{Name: name}
		if len(rows) > 0 {
			ds.Columns = rows[0]
			for _, r := range rows[1:] {
				cells := make([]interface{}, len(r))
				for i, v := range r {
					cells[i] = v
				}
				ds.Rows = append(ds.Rows, cells)
			}
		}
		out = append(out, ds)
	}
	return out, nil
}
