package handlers

import (
	"net/http"
	"strconv"

	"taxidesk/internal/http/middleware"
	"taxidesk/internal/repositories"
	"taxidesk/internal/services"

	"github.com/gin-gonic/gin"
)

// GetInvoicePDF returns the printable invoice (inline).
func GetInvoicePDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_invoice_id", "invalid invoice id", err)
		return
	}

	svc := services.DocsService{
		InvoiceRepo: repositories.InvoiceRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GetQuotationPDF returns the printable quotation (inline).
func GetQuotationPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_quotation_id", "invalid quotation id", err)
		return
	}

	svc := services.DocsService{
		QuotationRepo: repositories.QuotationRepository{},
		RequestID:     middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateQuotation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
