package repositories

import (
	"database/sql"

	intconfig "taxidesk/internal/config"
	intdb "taxidesk/internal/db"
	"taxidesk/internal/utils"
)

type StaffRecord struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	MonthlySalary float64 `json:"monthly_salary"`
	Status        string  `json:"status"`
}

type StaffRepository struct {
	DB *sql.DB
}

func (r StaffRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListActive returns staff not marked inactive.
func (r StaffRepository) ListActive() ([]StaffRecord, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, "staff") {
		return []StaffRecord{}, nil
	}

	rows, err := db.Query(`
		SELECT id, name, role, monthly_salary, COALESCE(status,'active')
		FROM staff
		WHERE COALESCE(status,'active') <> 'inactive'
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StaffRecord{}
	for rows.Next() {
		var rec StaffRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Role, &rec.MonthlySalary, &rec.Status); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AdvanceTotalsMonth returns per-staff advance totals for month ("YYYY-MM").
func (r StaffRepository) AdvanceTotalsMonth(month string) (map[int64]float64, error) {
	year, m, err := utils.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	db := r.db()
	if db == nil || !intdb.HasTable(db, "staff_advances") {
		return map[int64]float64{}, nil
	}

	start, end := utils.MonthRange(year, m)
	rows, err := db.Query(`
		SELECT staff_id, COALESCE(SUM(amount),0)
		FROM staff_advances
		WHERE advance_date >= ? AND advance_date < ?
		GROUP BY staff_id
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]float64{}
	for rows.Next() {
		var id int64
		var sum float64
		if err := rows.Scan(&id, &sum); err != nil {
			return out, err
		}
		out[id] = sum
	}
	return out, rows.Err()
}
