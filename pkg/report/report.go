// Package report renders asset data for people: the XLSX asset report and the
// warranty alert list.
package report

import (
	"fmt"
	"io"
	"strconv"

	"asset-management-api/internal/models"

	"github.com/tealeg/xlsx/v3"
)

// SheetName is the worksheet the asset report is written to.
const SheetName = "Assets"

const notAvailable = "N/A"

// Columns is the header row of the asset report, in order.
var Columns = []string{
	"Asset Code", "Serial Number", "Asset Type", "Make", "Model",
	"Assigned User", "Status", "Category", "Location", "Warranty Status", "Expiry Date",
	"Capital Date", "Year", "Asset Description", "Department", "Division", "Plant Code",
}

// Workbook builds the asset report. Missing references and dates print as
// N/A; other empty columns are left blank.
func Workbook(assets []models.AssetView) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range Columns {
		header.AddCell().SetString(col)
	}

	for _, a := range assets {
		row := sheet.AddRow()
		for _, v := range rowValues(a) {
			row.AddCell().SetString(v)
		}
	}
	return f, nil
}

// WriteAssets writes the asset report as an XLSX document to w.
func WriteAssets(w io.Writer, assets []models.AssetView) error {
	f, err := Workbook(assets)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func rowValues(a models.AssetView) []string {
	year := ""
	if a.Year != nil {
		year = strconv.Itoa(*a.Year)
	}
	return []string{
		a.AssetCode,
		a.SerialNumber,
		text(a.AssetType),
		text(a.Make),
		text(a.Model),
		orNA(a.UserName),
		text(a.Status),
		orNA(a.CategoryName),
		orNA(a.LocationName),
		text(a.WarrantyStatus),
		date(a.ExpiryDate),
		date(a.CapitalDate),
		year,
		text(a.AssetDescription),
		text(a.Department),
		text(a.Division),
		text(a.PlantCode),
	}
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}

func date(d *models.Date) string {
	if d == nil || d.IsZero() {
		return notAvailable
	}
	return d.String()
}
