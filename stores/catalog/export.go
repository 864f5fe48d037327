package catalogstore

import (
	"fmt"
	"io"
	"os"

	"github.com/tealeg/xlsx"
)

// ExportXLSX writes the cached catalog as a spreadsheet: the admin list when
// populated, otherwise the active list. Fetch before exporting.
func (s *Store) ExportXLSX(w io.Writer) error {
	products := s.All()
	if len(products) == 0 {
		products = s.Active()
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	// Header row
	headers := []string{
		"ID", "Name", "Description", "Price", "Stock", "Active",
		"CreatedAt", "UpdatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	// Data rows
	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	return nil
}

// ExportXLSXFile is ExportXLSX to a file path.
func (s *Store) ExportXLSXFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := s.ExportXLSX(f); err != nil {
		return err
	}
	return f.Sync()
}
