package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestExpenseListMonth(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("expenses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("expenses"))
	mock.ExpectQuery("FROM expenses").WithArgs("2026-03-01", "2026-04-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "expense_date", "vehicle_no", "category", "amount", "notes"}).
			AddRow(1, "2026-03-02", "TN38A1234", "fuel", 3200.0, "").
			AddRow(2, "2026-03-15", "", "maintenance", 1500.0, "brake pads"))

	repo := ExpenseRepository{DB: db}
	out, err := repo.ListMonth("2026-03")
	if err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(out))
	}
	if out[0].Category != "fuel" || out[0].Amount != 3200 {
		t.Fatalf("first record wrong: %+v", out[0])
	}
	if out[1].Notes != "brake pads" {
		t.Fatalf("second record wrong: %+v", out[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExpenseSumMonth(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("expenses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("expenses"))
	mock.ExpectQuery("FROM expenses").WithArgs("2026-03-01", "2026-04-01").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("fuel", 4700.0).
			AddRow("toll", 800.0))

	repo := ExpenseRepository{DB: db}
	sums, err := repo.SumMonth("2026-03")
	if err != nil {
		t.Fatalf("SumMonth error: %v", err)
	}
	if sums["fuel"] != 4700 || sums["toll"] != 800 {
		t.Fatalf("sums wrong: %+v", sums)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExpenseListMonthMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("expenses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	repo := ExpenseRepository{DB: db}
	out, err := repo.ListMonth("2026-03")
	if err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result for missing table, got %d rows", len(out))
	}
}
