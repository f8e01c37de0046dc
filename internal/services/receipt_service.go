package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"carwash-backend/internal/models"
	"carwash-backend/internal/timeutil"
)

// ReceiptService renders a printable order receipt.
type ReceiptService struct {
	Entries  EntryStore
	Settings *SettingsService
}

func NewReceiptService(entries EntryStore, settings *SettingsService) *ReceiptService {
	return &ReceiptService{Entries: entries, Settings: settings}
}

func currencySymbol(currency string) string {
	if currency == models.CurrencyUSD {
		return "$"
	}
	return "COP "
}

// GenerateEntryReceipt builds the PDF receipt for one order.
func (s *ReceiptService) GenerateEntryReceipt(ctx context.Context, entryID int) ([]byte, error) {
	entry, err := s.Entries.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	symbol := currencySymbol(settings.Currency)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, settings.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if settings.Address != nil && *settings.Address != "" {
		pdf.CellFormat(190, 6, *settings.Address, "", 1, "C", false, 0, "")
	}
	if settings.Phone != nil && *settings.Phone != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Tel: %s", *settings.Phone), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Order box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Orden #%d", entry.ID), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Estado: %s", entry.Status), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Llegada: %s", entry.ArrivalDate.In(timeutil.Location()).Format("02-Jan-2006 03:04 PM")), "RB", 1, "L", false, 0, "")
	completion := "-"
	if entry.CompletionDate != nil {
		completion = entry.CompletionDate.In(timeutil.Location()).Format("02-Jan-2006 03:04 PM")
	}
	technician := ""
	if entry.Employee != nil {
		technician = entry.Employee.Name
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Finalizada: %s", completion), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Técnico: %s", technician), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Vehicle
	if v := entry.Vehicle; v != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Vehículo", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(95, 7, fmt.Sprintf("VIN: %s", v.VIN), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Código: %s", v.InternalCode), "RB", 1, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("%s %s %d", v.Brand, v.Model, v.Year), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Color: %s", v.Color), "RB", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	// Service and total
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Servicio", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	if svc := entry.Service; svc != nil {
		pdf.CellFormat(130, 7, svc.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, fmt.Sprintf("%s%.2f", symbol, svc.Price), "1", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "B", 14)
		pdf.SetFillColor(200, 255, 200)
		pdf.CellFormat(190, 10, fmt.Sprintf("Total: %s%.2f", symbol, svc.Price), "1", 1, "C", true, 0, "")
	}

	if entry.Notes != nil && *entry.Notes != "" {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Notas", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, *entry.Notes, "1", "L", false)
	}
	if entry.FinalNotes != nil && *entry.FinalNotes != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Notas finales", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, *entry.FinalNotes, "1", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
