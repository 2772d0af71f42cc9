package quotations

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/exportracker/quotation-backend/pkg/db/models"
)

const (
	exportSheet      = "Quotations"
	exportTimeLayout = "2006-01-02 15:04"
)

var exportHeader = []interface{}{
	"Created",
	"Company",
	"Destination",
	"Customer",
	"Pallets",
	"Actual Weight (kg)",
	"Volume Weight (kg)",
	"Chargeable Weight (kg)",
	"Freight Cost (THB)",
	"Clearance Cost (THB)",
	"Additional Charges (THB)",
	"Total Cost (THB)",
	"Status",
	"Completed",
}

// ExportFilename names the workbook for the moment it was generated.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("quotations-%s.xlsx", now.UTC().Format("20060102-150405"))
}

// WriteWorkbook renders rows as an xlsx workbook with a grand total line.
func WriteWorkbook(w io.Writer, rows []models.Quotation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return err
	}

	var grandTotal float64
	for i, q := range rows {
		completed := ""
		if q.CompletedAt != nil {
			completed = q.CompletedAt.UTC().Format(exportTimeLayout)
		}
		values := []interface{}{
			q.CreatedAt.UTC().Format(exportTimeLayout),
			q.CompanyName,
			q.Destination,
			q.CustomerName,
			len(q.Pallets),
			money(q.TotalActualWeight).InexactFloat64(),
			money(q.TotalVolumeWeight).InexactFloat64(),
			money(q.ChargeableWeight).InexactFloat64(),
			money(q.TotalFreightCost).InexactFloat64(),
			money(q.ClearanceCost).InexactFloat64(),
			money(q.AdditionalCharges.Total()).InexactFloat64(),
			money(q.TotalCost).InexactFloat64(),
			q.Status.String(),
			completed,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
		grandTotal += q.TotalCost
	}

	totalRow := len(rows) + 2
	labelCell, _ := excelize.CoordinatesToCellName(11, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(12, totalRow)
	if err := f.SetCellValue(exportSheet, labelCell, "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(exportSheet, totalCell, money(grandTotal).InexactFloat64()); err != nil {
		return err
	}
	if err := f.SetRowStyle(exportSheet, totalRow, totalRow, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "A", "N", 18); err != nil {
		return err
	}

	return f.Write(w)
}
