package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	analysis "powerplan/internal/analysis/application"
	tariff "powerplan/internal/tariff/domain"
)

// BuildEstimatePDF renders a minimal PDF for an annual cost estimate.
func BuildEstimatePDF(est *tariff.AnnualEstimate, months []analysis.MonthRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Annual Electricity Cost Estimate")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Plan: %s", est.Plan.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Days of data: %d", est.Usage.DaysInData))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Anytime usage (kWh/yr): %.1f", est.Usage.AnytimeKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Controlled load usage (kWh/yr): %.1f", est.Usage.ControlledLoadKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Solar export (kWh/yr): %.1f", est.Usage.SolarKWh))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Component", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Amount ($/yr)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	rows := []struct {
		label  string
		amount float64
	}{
		{"Anytime usage", est.AnytimeCost},
		{"Controlled load usage", est.ControlledLoadCost},
		{"Supply charges", est.SupplyCost},
		{"Solar feed-in credit", -est.SolarCredit},
	}
	for _, row := range rows {
		pdf.CellFormat(90, 6, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", row.amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", est.TotalCost), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	if len(months) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(30, 6, "Month", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Anytime (kWh)", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Ctrl load (kWh)", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Solar (kWh)", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Cost ($)", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, m := range months {
			pdf.CellFormat(30, 6, m.Month.Format("2006-01"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", m.AnytimeKWh), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", m.ControlledLoadKWh), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", m.SolarKWh), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", m.Cost), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildEstimateXLSX renders a minimal XLSX for an annual cost estimate.
func BuildEstimateXLSX(est *tariff.AnnualEstimate, months []analysis.MonthRow) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	monthlySheet := "monthly"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(monthlySheet)

	_ = f.SetCellValue(summarySheet, "A1", "Annual Electricity Cost Estimate")
	_ = f.SetCellValue(summarySheet, "A3", "Plan")
	_ = f.SetCellValue(summarySheet, "B3", est.Plan.Name)
	_ = f.SetCellValue(summarySheet, "A4", "Days of data")
	_ = f.SetCellValue(summarySheet, "B4", est.Usage.DaysInData)
	_ = f.SetCellValue(summarySheet, "A5", "Anytime usage (kWh/yr)")
	_ = f.SetCellValue(summarySheet, "B5", est.Usage.AnytimeKWh)
	_ = f.SetCellValue(summarySheet, "A6", "Controlled load usage (kWh/yr)")
	_ = f.SetCellValue(summarySheet, "B6", est.Usage.ControlledLoadKWh)
	_ = f.SetCellValue(summarySheet, "A7", "Solar export (kWh/yr)")
	_ = f.SetCellValue(summarySheet, "B7", est.Usage.SolarKWh)
	_ = f.SetCellValue(summarySheet, "A8", "Anytime cost ($/yr)")
	_ = f.SetCellValue(summarySheet, "B8", est.AnytimeCost)
	_ = f.SetCellValue(summarySheet, "A9", "Controlled load cost ($/yr)")
	_ = f.SetCellValue(summarySheet, "B9", est.ControlledLoadCost)
	_ = f.SetCellValue(summarySheet, "A10", "Supply charges ($/yr)")
	_ = f.SetCellValue(summarySheet, "B10", est.SupplyCost)
	_ = f.SetCellValue(summarySheet, "A11", "Solar feed-in credit ($/yr)")
	_ = f.SetCellValue(summarySheet, "B11", est.SolarCredit)
	_ = f.SetCellValue(summarySheet, "A12", "Total ($/yr)")
	_ = f.SetCellValue(summarySheet, "B12", est.TotalCost)

	_ = f.SetCellValue(monthlySheet, "A1", "Month")
	_ = f.SetCellValue(monthlySheet, "B1", "Anytime (kWh)")
	_ = f.SetCellValue(monthlySheet, "C1", "Controlled load (kWh)")
	_ = f.SetCellValue(monthlySheet, "D1", "Solar (kWh)")
	_ = f.SetCellValue(monthlySheet, "E1", "Days")
	_ = f.SetCellValue(monthlySheet, "F1", "Cost ($)")
	for i, m := range months {
		row := i + 2
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", row), m.Month.Format("2006-01"))
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", row), m.AnytimeKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", row), m.ControlledLoadKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("D%d", row), m.SolarKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("E%d", row), m.Days)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("F%d", row), m.Cost)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
