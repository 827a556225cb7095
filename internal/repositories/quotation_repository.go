package repositories

import (
	"database/sql"

	intconfig "taxidesk/internal/config"
	"taxidesk/internal/fare"
)

type QuotationRecord struct {
	ID          int64  `json:"id"`
	QuotationNo string `json:"quotation_no"`
	QuoteDate   string `json:"quote_date"`
	ValidUntil  string `json:"valid_until"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	RouteFrom     string `json:"route_from"`
	RouteTo       string `json:"route_to"`

	VehicleID string  `json:"vehicle_id"`
	Mode      string  `json:"mode"`
	StartKm   float64 `json:"start_km"`
	EndKm     float64 `json:"end_km"`
	Rate      float64 `json:"rate"`
	Days      int     `json:"days"`
	GST       bool    `json:"gst"`

	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (rec QuotationRecord) TripParams() fare.TripParams {
	return fare.TripParams{
		StartKm:   rec.StartKm,
		EndKm:     rec.EndKm,
		Rate:      rec.Rate,
		Mode:      fare.TripMode(rec.Mode),
		VehicleID: rec.VehicleID,
		Days:      rec.Days,
		GST:       rec.GST,
	}
}

type QuotationRepository struct {
	DB *sql.DB
}

func (r QuotationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r QuotationRepository) GetByID(id int64) (QuotationRecord, error) {
	var rec QuotationRecord
	err := r.db().QueryRow(`
		SELECT id, quotation_no, quote_date, COALESCE(valid_until,''),
		       customer_name, COALESCE(customer_phone,''), COALESCE(route_from,''), COALESCE(route_to,''),
		       vehicle_id, mode, start_km, end_km, rate, days, gst,
		       COALESCE(status,'open'), COALESCE(notes,'')
		FROM quotations WHERE id = ?
	`, id).Scan(
		&rec.ID, &rec.QuotationNo, &rec.QuoteDate, &rec.ValidUntil,
		&rec.CustomerName, &rec.CustomerPhone, &rec.RouteFrom, &rec.RouteTo,
		&rec.VehicleID, &rec.Mode, &rec.StartKm, &rec.EndKm, &rec.Rate, &rec.Days, &rec.GST,
		&rec.Status, &rec.Notes,
	)
	return rec, err
}
