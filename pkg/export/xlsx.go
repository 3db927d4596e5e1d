package export

import (
	"elearning_backend/internal/model"
	"elearning_backend/internal/repository"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WriteWorkbook 把进度表写成 xlsx，列顺序与记录文件一致
func WriteWorkbook(w io.Writer, records []model.UserRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	header := repository.Header(records)
	repository.FillDefaults(records, header)

	if err := setRow(f, 1, header); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return err
	}

	for i, rec := range records {
		row := make([]string, len(header))
		row[0] = rec.UserID
		row[1] = rec.Name
		for j, field := range header[2:] {
			row[j+2] = rec.Get(field).String()
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheetName, cell, &cells)
}
