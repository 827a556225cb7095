package services

import (
	"bytes"
	"strings"
	"testing"

	"taxidesk/internal/domain"
	"taxidesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGenerateInvoicePDFWithLoader(t *testing.T) {
	svc := DocsService{
		InvoiceLoader: func(id int64) (repositories.InvoiceRecord, error) {
			return repositories.InvoiceRecord{
				ID:           id,
				InvoiceNo:    "INV-2026-0007",
				InvoiceDate:  "2026-03-14",
				CustomerName: "Ravi Kumar",
				RouteFrom:    "Coimbatore",
				RouteTo:      "Chennai",
				VehicleID:    "sedan",
				Mode:         "drop",
				StartKm:      100,
				EndKm:        250,
				GST:          true,
			}, nil
		},
	}

	pdfBytes, filename, err := svc.GenerateInvoice(7)
	if err != nil {
		t.Fatalf("GenerateInvoice error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (%d bytes)", len(pdfBytes))
	}
	if !strings.HasPrefix(filename, "INV-2026-0007") {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("filename missing .pdf suffix: %q", filename)
	}
}

func TestGenerateQuotationPDFWithLoader(t *testing.T) {
	svc := DocsService{
		QuotationLoader: func(id int64) (repositories.QuotationRecord, error) {
			return repositories.QuotationRecord{
				ID:           id,
				QuotationNo:  "QTN-2026-0003",
				QuoteDate:    "2026-03-01",
				ValidUntil:   "2026-03-15",
				CustomerName: "Meena Travels",
				RouteFrom:    "Madurai",
				RouteTo:      "Rameswaram",
				VehicleID:    "tempo",
				Mode:         "round",
				StartKm:      0,
				EndKm:        350,
			}, nil
		},
	}

	pdfBytes, filename, err := svc.GenerateQuotation(3)
	if err != nil {
		t.Fatalf("GenerateQuotation error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasPrefix(filename, "QTN-2026-0003") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestGenerateInvoiceNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM invoices").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := DocsService{InvoiceRepo: repositories.InvoiceRepository{DB: db}}
	_, _, err = svc.GenerateInvoice(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
