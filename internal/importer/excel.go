// Package importer reads merchant product sheets and produces the import
// template workbook. Column layout follows the original merchant-facing
// sheet: 商品名称 / 类目 / 品牌 / 材质 / 尺寸 / 颜色 / 适用人群 / 图片URL.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"draftflow/internal/domain"
)

const sheetName = "商品信息"

var columns = []string{"商品名称", "类目", "品牌", "材质", "尺寸", "颜色", "适用人群", "图片URL"}

// ParseProducts reads the first sheet of an XLSX workbook into product
// records. Rows without a product name are skipped. The audience column is a
// comma-separated list; a missing audience defaults to general and a missing
// category to clothing.
func ParseProducts(r io.Reader) ([]domain.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("importer: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := headerIndex(rows[0])
	var products []domain.Product
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, index["商品名称"]))
		if name == "" {
			continue
		}
		category := strings.TrimSpace(cell(row, index["类目"]))
		if category == "" {
			category = domain.DefaultCategory
		}
		products = append(products, domain.Product{
			ID:             uuid.NewString(),
			Name:           name,
			Category:       category,
			Brand:          strings.TrimSpace(cell(row, index["品牌"])),
			Material:       strings.TrimSpace(cell(row, index["材质"])),
			Size:           strings.TrimSpace(cell(row, index["尺寸"])),
			Color:          strings.TrimSpace(cell(row, index["颜色"])),
			TargetAudience: splitAudience(cell(row, index["适用人群"])),
			ImageURL:       strings.TrimSpace(cell(row, index["图片URL"])),
			CreatedAt:      time.Now(),
		})
	}
	return products, nil
}

// WriteTemplate writes the downloadable import template workbook with the
// header row and one example product.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("importer: rename sheet: %w", err)
	}
	example := []string{"示例商品", "clothing", "示例品牌", "棉", "L", "白色", "men,women", ""}
	for col, header := range columns {
		headerCell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("importer: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, headerCell, header); err != nil {
			return fmt.Errorf("importer: write header: %w", err)
		}
		valueCell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return fmt.Errorf("importer: value cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, valueCell, example[col]); err != nil {
			return fmt.Errorf("importer: write example: %w", err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("importer: write workbook: %w", err)
	}
	return nil
}

// headerIndex maps known column headers to their position; unknown headers
// are ignored so merchants can keep extra columns in their sheets.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(columns))
	for _, col := range columns {
		index[col] = -1
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := index[name]; ok {
			index[name] = i
		}
	}
	return index
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// splitAudience splits the comma-separated audience column, tolerating the
// full-width comma. Empty input defaults to the general audience.
func splitAudience(raw string) []string {
	raw = strings.ReplaceAll(raw, "，", ",")
	var audience []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			audience = append(audience, part)
		}
	}
	if len(audience) == 0 {
		return []string{domain.AudienceGeneral}
	}
	return audience
}
