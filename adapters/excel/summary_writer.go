package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bayeslab/internal/errors"
	"bayeslab/internal/summarize"
)

var summaryHeaders = []string{"parameter", "mean", "sd", "mc_err", "median", "q2.5", "q25", "q75", "q97.5"}

// SummaryWriter exports posterior summaries to an Excel workbook, one sheet
// per lesson.
type SummaryWriter struct {
	filePath string
}

// NewSummaryWriter creates a summary workbook writer
func NewSummaryWriter(filePath string) *SummaryWriter {
	return &SummaryWriter{filePath: filePath}
}

// Write saves one sheet per lesson in the given order.
func (w *SummaryWriter) Write(lessons []string, byLesson map[string][]summarize.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, lesson := range lessons {
		if _, err := f.NewSheet(lesson); err != nil {
			return errors.Wrapf(err, "creating sheet %s", lesson)
		}
		for col, h := range summaryHeaders {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(lesson, cell, h); err != nil {
				return err
			}
		}
		for row, s := range byLesson[lesson] {
			values := []interface{}{s.Name, s.Mean, s.SD, s.MCErr, s.Median, s.Q2_5, s.Q25, s.Q75, s.Q97_5}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(lesson, cell, v); err != nil {
					return errors.Wrapf(err, "writing %s row %d", lesson, row+2)
				}
			}
		}
	}

	// Drop the default sheet so the workbook opens on the first lesson.
	if len(lessons) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return errors.Wrap(err, "removing default sheet")
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return errors.Wrap(err, fmt.Sprintf("saving workbook %s", w.filePath))
	}
	return nil
}
