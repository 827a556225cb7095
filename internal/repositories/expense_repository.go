package repositories

import (
	"database/sql"

	intconfig "taxidesk/internal/config"
	intdb "taxidesk/internal/db"
	"taxidesk/internal/utils"
)

type ExpenseRecord struct {
	ID          int64   `json:"id"`
	ExpenseDate string  `json:"expense_date"`
	VehicleNo   string  `json:"vehicle_no"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
}

type ExpenseRepository struct {
	DB *sql.DB
}

func (r ExpenseRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListMonth returns expenses dated within month ("YYYY-MM").
func (r ExpenseRepository) ListMonth(month string) ([]ExpenseRecord, error) {
	year, m, err := utils.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	db := r.db()
	if db == nil || !intdb.HasTable(db, "expenses") {
		return []ExpenseRecord{}, nil
	}

	start, end := utils.MonthRange(year, m)
	rows, err := db.Query(`
		SELECT id, expense_date, COALESCE(vehicle_no,''), category, amount, COALESCE(notes,'')
		FROM expenses
		WHERE expense_date >= ? AND expense_date < ?
		ORDER BY expense_date ASC, id ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExpenseRecord{}
	for rows.Next() {
		var rec ExpenseRecord
		if err := rows.Scan(&rec.ID, &rec.ExpenseDate, &rec.VehicleNo, &rec.Category, &rec.Amount, &rec.Notes); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SumMonth returns total spend per category for month.
func (r ExpenseRepository) SumMonth(month string) (map[string]float64, error) {
	year, m, err := utils.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	db := r.db()
	if db == nil || !intdb.HasTable(db, "expenses") {
		return map[string]float64{}, nil
	}

	start, end := utils.MonthRange(year, m)
	rows, err := db.Query(`
		SELECT category, COALESCE(SUM(amount),0)
		FROM expenses
		WHERE expense_date >= ? AND expense_date < ?
		GROUP BY category
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var cat string
		var sum float64
		if err := rows.Scan(&cat, &sum); err != nil {
			return out, err
		}
		out[cat] = sum
	}
	return out, rows.Err()
}
