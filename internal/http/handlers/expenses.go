package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	intconfig "taxidesk/internal/config"
	"taxidesk/internal/utils"

	"github.com/gin-gonic/gin"
)

var expenseCategories = map[string]bool{
	"fuel":        true,
	"maintenance": true,
	"permit":      true,
	"toll":        true,
	"salary":      true,
	"other":       true,
}

type ExpenseDTO struct {
	ID          int64   `json:"id"`
	ExpenseDate string  `json:"expenseDate"`
	VehicleNo   string  `json:"vehicleNo"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
}

func validateExpense(d *ExpenseDTO) string {
	d.Category = strings.ToLower(strings.TrimSpace(d.Category))
	if d.ExpenseDate == "" {
		return "expenseDate required"
	}
	if !expenseCategories[d.Category] {
		return "unknown category"
	}
	if d.Amount <= 0 {
		return "amount must be positive"
	}
	return ""
}

// GET /api/expenses?month=YYYY-MM
func GetExpenses(c *gin.Context) {
	query := `SELECT id, expense_date, COALESCE(vehicle_no,''), category, amount, COALESCE(notes,'') FROM expenses`
	args := []any{}
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		year, m, err := utils.ParseMonth(month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
		start, end := utils.MonthRange(year, m)
		query += ` WHERE expense_date >= ? AND expense_date < ?`
		args = append(args, start, end)
	}
	query += ` ORDER BY expense_date DESC, id DESC`

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		log.Println("GetExpenses query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []ExpenseDTO{}
	for rows.Next() {
		var d ExpenseDTO
		if err := rows.Scan(&d.ID, &d.ExpenseDate, &d.VehicleNo, &d.Category, &d.Amount, &d.Notes); err != nil {
			log.Println("GetExpenses scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, out)
}

// GET /api/expenses/summary?month=YYYY-MM
func GetExpenseSummary(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month required"})
		return
	}
	year, m, err := utils.ParseMonth(month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	start, end := utils.MonthRange(year, m)
	rows, err := intconfig.DB.Query(`
		SELECT category, COALESCE(SUM(amount),0)
		FROM expenses
		WHERE expense_date >= ? AND expense_date < ?
		GROUP BY category
	`, start, end)
	if err != nil {
		log.Println("GetExpenseSummary query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	byCategory := map[string]float64{}
	var total float64
	for rows.Next() {
		var cat string
		var sum float64
		if err := rows.Scan(&cat, &sum); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		byCategory[cat] = sum
		total += sum
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":      month,
		"byCategory": byCategory,
		"total":      total,
	})
}

// POST /api/expenses
func CreateExpense(c *gin.Context) {
	var d ExpenseDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateExpense(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO expenses (expense_date, vehicle_no, category, amount, notes)
		VALUES (?, ?, ?, ?, ?)
	`, d.ExpenseDate, d.VehicleNo, d.Category, d.Amount, d.Notes)
	if err != nil {
		log.Println("CreateExpense insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID, _ = res.LastInsertId()
	c.JSON(http.StatusCreated, d)
}

// PUT /api/expenses/:id
func UpdateExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var d ExpenseDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateExpense(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var exists int64
	err = intconfig.DB.QueryRow(`SELECT id FROM expenses WHERE id=?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := intconfig.DB.Exec(`
		UPDATE expenses SET expense_date=?, vehicle_no=?, category=?, amount=?, notes=?
		WHERE id=?
	`, d.ExpenseDate, d.VehicleNo, d.Category, d.Amount, d.Notes, id); err != nil {
		log.Println("UpdateExpense update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID = id
	c.JSON(http.StatusOK, d)
}

// DELETE /api/expenses/:id
func DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := intconfig.DB.Exec(`DELETE FROM expenses WHERE id=?`, id); err != nil {
		log.Println("DeleteExpense delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
