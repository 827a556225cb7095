package services

import (
	"testing"

	"taxidesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMonthlySummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("invoices").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("invoices"))

	invoiceCols := []string{
		"id", "invoice_no", "invoice_date",
		"customer_name", "customer_phone", "route_from", "route_to", "driver_name", "vehicle_no",
		"vehicle_id", "mode", "start_km", "end_km", "rate", "days",
		"toll", "parking", "permit", "gst",
		"waiting_hours", "hill_station", "pet",
		"night_batta", "night_drive", "night_stay",
		"hourly_rate", "duration_hours", "package_price", "included_km", "included_hours", "extra_hour_rate",
		"garage_buffer", "allowance_mode", "interstate_state",
		"extra_items", "payment_status", "notes",
	}
	// sedan drop 150 km: 150 x 16 = 2400 distance + 300 batta = 2700
	mock.ExpectQuery("FROM invoices").WithArgs("2026-03-01", "2026-04-01").
		WillReturnRows(sqlmock.NewRows(invoiceCols).AddRow(
			1, "INV-2026-0001", "2026-03-10",
			"Ravi Kumar", "", "Coimbatore", "Chennai", "Kumar", "TN38A1234",
			"sedan", "drop", 100.0, 250.0, 0.0, 1,
			0.0, 0.0, 0.0, false,
			0.0, false, false,
			0.0, false, 0.0,
			0.0, 0.0, 0.0, 0.0, 0.0, 0.0,
			false, "auto", "",
			nil, "paid", "",
		))

	mock.ExpectQuery("information_schema\\.tables").WithArgs("expenses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("expenses"))
	mock.ExpectQuery("FROM expenses").WithArgs("2026-03-01", "2026-04-01").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("fuel", 500.0))

	svc := ReportsService{
		InvoiceRepo: repositories.InvoiceRepository{DB: db},
		ExpenseRepo: repositories.ExpenseRepository{DB: db},
	}
	rep, err := svc.MonthlySummary("2026-03")
	if err != nil {
		t.Fatalf("MonthlySummary error: %v", err)
	}

	if rep.InvoiceCount != 1 {
		t.Fatalf("invoice count = %d, want 1", rep.InvoiceCount)
	}
	if rep.GrossRevenue != 2700 {
		t.Fatalf("gross revenue = %v, want 2700", rep.GrossRevenue)
	}
	if rep.TotalKm != 150 {
		t.Fatalf("total km = %v, want 150", rep.TotalKm)
	}
	if rep.ExpenseTotal != 500 || rep.ExpenseByCategory["fuel"] != 500 {
		t.Fatalf("expenses wrong: %+v", rep)
	}
	if rep.NetProfit != 2200 {
		t.Fatalf("net profit = %v, want 2200", rep.NetProfit)
	}
	v := rep.ByVehicle["sedan"]
	if v.Trips != 1 || v.Revenue != 2700 || v.Km != 150 {
		t.Fatalf("vehicle rollup wrong: %+v", v)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
