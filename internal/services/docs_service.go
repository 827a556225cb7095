package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taxidesk/internal/domain"
	"taxidesk/internal/fare"
	"taxidesk/internal/repositories"
	"taxidesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable invoices and quotations. Amounts are
// always recomputed through the calculator from the stored trip inputs.
type DocsService struct {
	InvoiceRepo   repositories.InvoiceRepository
	QuotationRepo repositories.QuotationRepository
	RequestID     string

	InvoiceLoader   func(int64) (repositories.InvoiceRecord, error)
	QuotationLoader func(int64) (repositories.QuotationRecord, error)
}

func (s DocsService) GenerateInvoice(id int64) ([]byte, string, error) {
	rec, err := s.loadInvoice(id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("invoice_id=%d", id))
	return buildInvoicePDF(rec, fare.Calculate(rec.TripParams()))
}

func (s DocsService) GenerateQuotation(id int64) ([]byte, string, error) {
	rec, err := s.loadQuotation(id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_quotation", fmt.Sprintf("quotation_id=%d", id))
	return buildQuotationPDF(rec, fare.Calculate(rec.TripParams()))
}

func (s DocsService) loadInvoice(id int64) (repositories.InvoiceRecord, error) {
	if s.InvoiceLoader != nil {
		return s.InvoiceLoader(id)
	}
	rec, err := s.InvoiceRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, domain.NotFoundError{Resource: "invoice", Err: err}
	}
	return rec, err
}

func (s DocsService) loadQuotation(id int64) (repositories.QuotationRecord, error) {
	if s.QuotationLoader != nil {
		return s.QuotationLoader(id)
	}
	rec, err := s.QuotationRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, domain.NotFoundError{Resource: "quotation", Err: err}
	}
	return rec, err
}

func buildInvoicePDF(rec repositories.InvoiceRecord, bd fare.FareBreakdown) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TAX INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+safe(rec.InvoiceNo, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+safe(dateOnly(rec.InvoiceDate), utils.FormatDate(time.Now())))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name  : "+safe(rec.CustomerName, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Phone : "+safe(rec.CustomerPhone, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Trip:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	trip := fmt.Sprintf("%s -> %s (%s, %s)",
		safe(rec.RouteFrom, "-"), safe(rec.RouteTo, "-"),
		safe(string(bd.Mode), "-"), safe(rec.VehicleID, "-"),
	)
	pdf.MultiCell(0, 6, trip, "", "", false)
	if rec.DriverName != "" || rec.VehicleNo != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Driver: %s  Vehicle: %s", safe(rec.DriverName, "-"), safe(rec.VehicleNo, "-")))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Charges:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	writeAmountLine(pdf, fmt.Sprintf("Distance (%.0f km @ %.2f/km)", bd.EffectiveKm, bd.RateUsed), bd.DistanceCharge)
	writeAmountLine(pdf, "Driver batta", bd.DriverBatta)
	writeAmountLine(pdf, "Waiting", bd.WaitingCharge)
	writeAmountLine(pdf, "Hill charge", bd.HillCharge)
	writeAmountLine(pdf, "Pet charge", bd.PetCharge)
	writeAmountLine(pdf, "Night batta", bd.NightBatta)
	writeAmountLine(pdf, "Night stay", bd.NightStay)
	writeAmountLine(pdf, "Toll/parking/permit", bd.ExemptSubtotal)
	writeAmountLine(pdf, "GST (5%)", bd.GST)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatINR(bd.Total))
	pdf.Ln(10)

	if msg := bd.Advisory.Message(); msg != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Note: "+msg, "", "", false)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Tolls, parking and permits are collected at actuals and carry no GST.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.pdf", safeFilenamePart(safe(rec.InvoiceNo, fmt.Sprintf("INVOICE_%d", rec.ID))), safeFilenamePart(rec.CustomerName))
	return buf.Bytes(), filename, nil
}

func buildQuotationPDF(rec repositories.QuotationRecord, bd fare.FareBreakdown) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quotation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "QUOTATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Quotation No : "+safe(rec.QuotationNo, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date         : "+safe(dateOnly(rec.QuoteDate), "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Valid until  : "+safe(dateOnly(rec.ValidUntil), "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Prepared for:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name  : "+safe(rec.CustomerName, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Phone : "+safe(rec.CustomerPhone, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	trip := fmt.Sprintf("%s -> %s (%s, %s, %.0f km)",
		safe(rec.RouteFrom, "-"), safe(rec.RouteTo, "-"),
		safe(rec.Mode, "-"), safe(rec.VehicleID, "-"), bd.EffectiveKm,
	)
	pdf.MultiCell(0, 6, trip, "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Estimated fare: "+utils.FormatINR(bd.Total))
	pdf.Ln(10)

	if msg := bd.Advisory.Message(); msg != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Note: "+msg, "", "", false)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Estimate only. Tolls, parking and interstate permits are billed at actuals.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.pdf", safeFilenamePart(safe(rec.QuotationNo, fmt.Sprintf("QUOTATION_%d", rec.ID))), safeFilenamePart(rec.CustomerName))
	return buf.Bytes(), filename, nil
}

func writeAmountLine(pdf *gofpdf.Fpdf, label string, amount float64) {
	if amount == 0 {
		return
	}
	pdf.Cell(0, 6, fmt.Sprintf("%s: %s", label, utils.FormatINR(amount)))
	pdf.Ln(6)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
