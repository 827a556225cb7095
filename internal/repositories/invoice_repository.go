package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "taxidesk/internal/config"
	intdb "taxidesk/internal/db"
	"taxidesk/internal/fare"
	"taxidesk/internal/utils"
)

// InvoiceRecord carries the stored trip inputs. Pricing is always
// recomputed through the calculator, never read from the row.
type InvoiceRecord struct {
	ID          int64  `json:"id"`
	InvoiceNo   string `json:"invoice_no"`
	InvoiceDate string `json:"invoice_date"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	RouteFrom     string `json:"route_from"`
	RouteTo       string `json:"route_to"`
	DriverName    string `json:"driver_name"`
	VehicleNo     string `json:"vehicle_no"`

	VehicleID string  `json:"vehicle_id"`
	Mode      string  `json:"mode"`
	StartKm   float64 `json:"start_km"`
	EndKm     float64 `json:"end_km"`
	Rate      float64 `json:"rate"`
	Days      int     `json:"days"`

	Toll    float64 `json:"toll"`
	Parking float64 `json:"parking"`
	Permit  float64 `json:"permit"`
	GST     bool    `json:"gst"`

	WaitingHours float64 `json:"waiting_hours"`
	HillStation  bool    `json:"hill_station"`
	Pet          bool    `json:"pet"`

	NightBatta float64 `json:"night_batta"`
	NightDrive bool    `json:"night_drive"`
	NightStay  float64 `json:"night_stay"`

	HourlyRate    float64 `json:"hourly_rate"`
	DurationHours float64 `json:"duration_hours"`
	PackagePrice  float64 `json:"package_price"`
	IncludedKm    float64 `json:"included_km"`
	IncludedHours float64 `json:"included_hours"`
	ExtraHourRate float64 `json:"extra_hour_rate"`

	GarageBuffer    bool   `json:"garage_buffer"`
	AllowanceMode   string `json:"allowance_mode"`
	InterstateState string `json:"interstate_state"`

	ExtraItems []fare.ChargeItem `json:"extra_items,omitempty"`

	PaymentStatus string `json:"payment_status"`
	Notes         string `json:"notes"`
}

func (rec InvoiceRecord) TripParams() fare.TripParams {
	return fare.TripParams{
		StartKm:         rec.StartKm,
		EndKm:           rec.EndKm,
		Rate:            rec.Rate,
		Mode:            fare.TripMode(rec.Mode),
		VehicleID:       rec.VehicleID,
		Days:            rec.Days,
		Toll:            rec.Toll,
		Parking:         rec.Parking,
		Permit:          rec.Permit,
		GST:             rec.GST,
		WaitingHours:    rec.WaitingHours,
		HillStation:     rec.HillStation,
		Pet:             rec.Pet,
		NightBatta:      rec.NightBatta,
		NightDrive:      rec.NightDrive,
		NightStay:       rec.NightStay,
		HourlyRate:      rec.HourlyRate,
		DurationHours:   rec.DurationHours,
		PackagePrice:    rec.PackagePrice,
		IncludedKm:      rec.IncludedKm,
		IncludedHours:   rec.IncludedHours,
		ExtraHourRate:   rec.ExtraHourRate,
		ExtraItems:      rec.ExtraItems,
		GarageBuffer:    rec.GarageBuffer,
		AllowanceMode:   fare.AllowanceMode(rec.AllowanceMode),
		InterstateState: rec.InterstateState,
	}
}

type InvoiceRepository struct {
	DB *sql.DB
}

func (r InvoiceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const invoiceSelect = `
	SELECT id, invoice_no, invoice_date,
	       customer_name, COALESCE(customer_phone,''), COALESCE(route_from,''), COALESCE(route_to,''),
	       COALESCE(driver_name,''), COALESCE(vehicle_no,''),
	       vehicle_id, mode, start_km, end_km, rate, days,
	       toll, parking, permit, gst,
	       waiting_hours, hill_station, pet,
	       night_batta, night_drive, night_stay,
	       hourly_rate, duration_hours, package_price, included_km, included_hours, extra_hour_rate,
	       garage_buffer, allowance_mode, interstate_state,
	       extra_items, COALESCE(payment_status,'unpaid'), COALESCE(notes,'')
	FROM invoices
`

func scanInvoiceRecord(scan func(dest ...any) error) (InvoiceRecord, error) {
	var rec InvoiceRecord
	var extraItems sql.NullString
	err := scan(
		&rec.ID, &rec.InvoiceNo, &rec.InvoiceDate,
		&rec.CustomerName, &rec.CustomerPhone, &rec.RouteFrom, &rec.RouteTo,
		&rec.DriverName, &rec.VehicleNo,
		&rec.VehicleID, &rec.Mode, &rec.StartKm, &rec.EndKm, &rec.Rate, &rec.Days,
		&rec.Toll, &rec.Parking, &rec.Permit, &rec.GST,
		&rec.WaitingHours, &rec.HillStation, &rec.Pet,
		&rec.NightBatta, &rec.NightDrive, &rec.NightStay,
		&rec.HourlyRate, &rec.DurationHours, &rec.PackagePrice, &rec.IncludedKm, &rec.IncludedHours, &rec.ExtraHourRate,
		&rec.GarageBuffer, &rec.AllowanceMode, &rec.InterstateState,
		&extraItems, &rec.PaymentStatus, &rec.Notes,
	)
	if err != nil {
		return rec, err
	}
	if extraItems.Valid && strings.TrimSpace(extraItems.String) != "" {
		_ = json.Unmarshal([]byte(extraItems.String), &rec.ExtraItems)
	}
	return rec, nil
}

// ListMonth returns the invoices dated within month ("YYYY-MM").
func (r InvoiceRepository) ListMonth(month string) ([]InvoiceRecord, error) {
	year, m, err := utils.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	db := r.db()
	if db == nil || !intdb.HasTable(db, "invoices") {
		return []InvoiceRecord{}, nil
	}

	start, end := utils.MonthRange(year, m)
	rows, err := db.Query(invoiceSelect+` WHERE invoice_date >= ? AND invoice_date < ? ORDER BY invoice_date ASC, id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []InvoiceRecord{}
	for rows.Next() {
		rec, err := scanInvoiceRecord(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r InvoiceRepository) GetByID(id int64) (InvoiceRecord, error) {
	db := r.db()
	row := db.QueryRow(invoiceSelect+` WHERE id = ?`, id)
	return scanInvoiceRecord(row.Scan)
}
