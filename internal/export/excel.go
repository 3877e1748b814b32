// Пакет export выгружает текущую страницу таблицы в .xlsx.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ExcelExporter struct {
	dir    string
	logger *zap.Logger
}

func NewExcelExporter(dir string, logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{
		dir:    dir,
		logger: logger.Named("export"),
	}
}

// PageToFile пишет заголовки и строки текущей страницы в файл
// <dir>/<slug>_<дата>.xlsx и возвращает путь к нему.
func (e *ExcelExporter) PageToFile(title string, headers []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("не удалось создать каталог выгрузки: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := title
	if sheet == "" {
		sheet = "Export"
	}
	f.SetSheetName("Sheet1", sheet)

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	f.SetSheetRow(sheet, "A1", &headerRow)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		f.SetSheetRow(sheet, cell, &values)
	}

	// Авто-ширина колонок для красоты
	endCol, _ := excelize.ColumnNumberToName(max(len(headers), 1))
	f.SetColWidth(sheet, "A", endCol, 24)

	fileName := fmt.Sprintf("%s_%s.xlsx", slug(title), time.Now().Format("2006-01-02"))
	path := filepath.Join(e.dir, fileName)

	if err := f.SaveAs(path); err != nil {
		e.logger.Error("ошибка записи xlsx", zap.String("path", path), zap.Error(err))
		return "", err
	}

	e.logger.Info("страница выгружена", zap.String("path", path), zap.Int("rows", len(rows)))
	return path, nil
}

func slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		return "export"
	}
	return s
}
