package handlers

import (
	"net/http"
	"strings"

	"taxidesk/internal/repositories"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/monthly?month=YYYY-MM
func GetMonthlyReport(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		respondError(c, http.StatusBadRequest, "month_required", "month query parameter required", nil)
		return
	}
	if _, _, err := utils.ParseMonth(month); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", err)
		return
	}

	svc := services.ReportsService{
		InvoiceRepo: repositories.InvoiceRepository{},
		ExpenseRepo: repositories.ExpenseRepository{},
	}
	report, err := svc.MonthlySummary(month)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "report_failed", "failed to build report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GET /api/payroll?month=YYYY-MM
func GetPayroll(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		respondError(c, http.StatusBadRequest, "month_required", "month query parameter required", nil)
		return
	}
	if _, _, err := utils.ParseMonth(month); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", err)
		return
	}

	svc := services.PayrollService{
		StaffRepo:   repositories.StaffRepository{},
		InvoiceRepo: repositories.InvoiceRepository{},
	}
	entries, err := svc.RunMonth(month)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "payroll_failed", "failed to build payroll", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month, "entries": entries})
}
