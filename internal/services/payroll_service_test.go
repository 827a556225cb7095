package services

import (
	"testing"

	"taxidesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestComputeNetPay(t *testing.T) {
	cases := []struct {
		name      string
		salary    float64
		batta     float64
		advances  float64
		wantNet   float64
		wantCarry float64
	}{
		{"no advances", 18000, 0, 0, 18000, 0},
		{"partial advance", 18000, 0, 5000, 13000, 0},
		{"batta added", 15000, 2400, 5000, 12400, 0},
		{"advance exceeds pay", 10000, 0, 12500, 0, 2500},
		{"exact settlement", 12000, 0, 12000, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			net, carry := ComputeNetPay(tc.salary, tc.batta, tc.advances)
			if net != tc.wantNet || carry != tc.wantCarry {
				t.Fatalf("got net=%v carry=%v, want net=%v carry=%v", net, carry, tc.wantNet, tc.wantCarry)
			}
		})
	}
}

func TestPayrollRunMonth(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("staff").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("staff"))
	mock.ExpectQuery("FROM staff\\b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "monthly_salary", "status"}).
			AddRow(1, "Kumar", "driver", 15000.0, "active").
			AddRow(2, "Latha", "office", 12000.0, "active"))

	mock.ExpectQuery("information_schema\\.tables").WithArgs("staff_advances").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("staff_advances"))
	mock.ExpectQuery("FROM staff_advances").WithArgs("2026-03-01", "2026-04-01").
		WillReturnRows(sqlmock.NewRows([]string{"staff_id", "total"}).AddRow(1, 3000.0))

	mock.ExpectQuery("information_schema\\.tables").WithArgs("invoices").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	svc := PayrollService{
		StaffRepo:   repositories.StaffRepository{DB: db},
		InvoiceRepo: repositories.InvoiceRepository{DB: db},
	}
	entries, err := svc.RunMonth("2026-03")
	if err != nil {
		t.Fatalf("RunMonth error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Kumar" || entries[0].NetPay != 12000 {
		t.Fatalf("driver entry wrong: %+v", entries[0])
	}
	if entries[1].NetPay != 12000 || entries[1].Advances != 0 {
		t.Fatalf("office entry wrong: %+v", entries[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
