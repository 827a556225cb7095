package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	intconfig "taxidesk/internal/config"
	"taxidesk/internal/fare"
	"taxidesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// =======================
// DTO
// =======================

// InvoiceDTO stores the raw trip inputs, never the computed fare. The
// breakdown is recomputed from these fields on every read so a tariff
// fix reprices history automatically.
type InvoiceDTO struct {
	ID          int64  `json:"id"`
	InvoiceNo   string `json:"invoiceNo"`
	InvoiceDate string `json:"invoiceDate"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	RouteFrom     string `json:"routeFrom"`
	RouteTo       string `json:"routeTo"`
	DriverName    string `json:"driverName"`
	VehicleNo     string `json:"vehicleNo"`

	VehicleID string  `json:"vehicleId"`
	Mode      string  `json:"mode"`
	StartKm   float64 `json:"startKm"`
	EndKm     float64 `json:"endKm"`
	Rate      float64 `json:"rate"`
	Days      int     `json:"days"`

	Toll    float64 `json:"toll"`
	Parking float64 `json:"parking"`
	Permit  float64 `json:"permit"`
	GST     bool    `json:"gst"`

	WaitingHours float64 `json:"waitingHours"`
	HillStation  bool    `json:"hillStation"`
	Pet          bool    `json:"pet"`

	NightBatta float64 `json:"nightBatta"`
	NightDrive bool    `json:"nightDrive"`
	NightStay  float64 `json:"nightStay"`

	HourlyRate    float64 `json:"hourlyRate"`
	DurationHours float64 `json:"durationHours"`
	PackagePrice  float64 `json:"packagePrice"`
	IncludedKm    float64 `json:"includedKm"`
	IncludedHours float64 `json:"includedHours"`
	ExtraHourRate float64 `json:"extraHourRate"`

	GarageBuffer    bool   `json:"garageBuffer"`
	AllowanceMode   string `json:"allowanceMode"`
	InterstateState string `json:"interstateState"`

	ExtraItems []fare.ChargeItem `json:"extraItems,omitempty"`

	PaymentStatus string `json:"paymentStatus"`
	Notes         string `json:"notes"`
}

type InvoiceWithFareDTO struct {
	Invoice   InvoiceDTO         `json:"invoice"`
	Breakdown fare.FareBreakdown `json:"breakdown"`
}

// TripParams maps the stored inputs back onto the calculator.
func (d InvoiceDTO) TripParams() fare.TripParams {
	return fare.TripParams{
		StartKm:         d.StartKm,
		EndKm:           d.EndKm,
		Rate:            d.Rate,
		Mode:            fare.TripMode(d.Mode),
		VehicleID:       d.VehicleID,
		Days:            d.Days,
		Toll:            d.Toll,
		Parking:         d.Parking,
		Permit:          d.Permit,
		GST:             d.GST,
		WaitingHours:    d.WaitingHours,
		HillStation:     d.HillStation,
		Pet:             d.Pet,
		NightBatta:      d.NightBatta,
		NightDrive:      d.NightDrive,
		NightStay:       d.NightStay,
		HourlyRate:      d.HourlyRate,
		DurationHours:   d.DurationHours,
		PackagePrice:    d.PackagePrice,
		IncludedKm:      d.IncludedKm,
		IncludedHours:   d.IncludedHours,
		ExtraHourRate:   d.ExtraHourRate,
		ExtraItems:      d.ExtraItems,
		GarageBuffer:    d.GarageBuffer,
		AllowanceMode:   fare.AllowanceMode(d.AllowanceMode),
		InterstateState: d.InterstateState,
	}
}

// =======================
// helpers
// =======================

const invoiceColumns = `
	id, invoice_no, invoice_date,
	customer_name, customer_phone, route_from, route_to, driver_name, vehicle_no,
	vehicle_id, mode, start_km, end_km, rate, days,
	toll, parking, permit, gst,
	waiting_hours, hill_station, pet,
	night_batta, night_drive, night_stay,
	hourly_rate, duration_hours, package_price, included_km, included_hours, extra_hour_rate,
	garage_buffer, allowance_mode, interstate_state,
	extra_items, COALESCE(payment_status,'unpaid'), COALESCE(notes,'')
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (InvoiceDTO, error) {
	var d InvoiceDTO
	var extraItems sql.NullString
	err := row.Scan(
		&d.ID, &d.InvoiceNo, &d.InvoiceDate,
		&d.CustomerName, &d.CustomerPhone, &d.RouteFrom, &d.RouteTo, &d.DriverName, &d.VehicleNo,
		&d.VehicleID, &d.Mode, &d.StartKm, &d.EndKm, &d.Rate, &d.Days,
		&d.Toll, &d.Parking, &d.Permit, &d.GST,
		&d.WaitingHours, &d.HillStation, &d.Pet,
		&d.NightBatta, &d.NightDrive, &d.NightStay,
		&d.HourlyRate, &d.DurationHours, &d.PackagePrice, &d.IncludedKm, &d.IncludedHours, &d.ExtraHourRate,
		&d.GarageBuffer, &d.AllowanceMode, &d.InterstateState,
		&extraItems, &d.PaymentStatus, &d.Notes,
	)
	if err != nil {
		return d, err
	}
	if extraItems.Valid && strings.TrimSpace(extraItems.String) != "" {
		if err := json.Unmarshal([]byte(extraItems.String), &d.ExtraItems); err != nil {
			log.Println("scanInvoice extra_items decode error:", err)
		}
	}
	return d, nil
}

func marshalExtraItems(items []fare.ChargeItem) any {
	if len(items) == 0 {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return string(b)
}

// nextInvoiceNo issues INV-<year>-NNNN, per calendar year.
func nextInvoiceNo(year string) (string, error) {
	var n int
	err := intconfig.DB.QueryRow(
		`SELECT COUNT(*) FROM invoices WHERE invoice_no LIKE ?`, "INV-"+year+"-%",
	).Scan(&n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%04d", year, n+1), nil
}

func validateInvoice(d *InvoiceDTO) string {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.VehicleID = strings.TrimSpace(strings.ToLower(d.VehicleID))
	d.Mode = strings.TrimSpace(strings.ToLower(d.Mode))
	if d.CustomerName == "" {
		return "customerName required"
	}
	if d.InvoiceDate == "" {
		return "invoiceDate required"
	}
	if _, ok := fare.VehicleByID(d.VehicleID); !ok {
		return "vehicle class not found"
	}
	if strings.TrimSpace(d.PaymentStatus) == "" {
		d.PaymentStatus = "unpaid"
	}
	return ""
}

// =======================
// ROUTES
// =======================

// GET /api/invoices?month=YYYY-MM
func GetInvoices(c *gin.Context) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	args := []any{}
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		year, m, err := utils.ParseMonth(month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
		start, end := utils.MonthRange(year, m)
		query += ` WHERE invoice_date >= ? AND invoice_date < ?`
		args = append(args, start, end)
	}
	query += ` ORDER BY invoice_date DESC, id DESC`

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		log.Println("GetInvoices query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []InvoiceWithFareDTO{}
	for rows.Next() {
		d, err := scanInvoice(rows)
		if err != nil {
			log.Println("GetInvoices scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, InvoiceWithFareDTO{Invoice: d, Breakdown: fare.Calculate(d.TripParams())})
	}
	if err := rows.Err(); err != nil {
		log.Println("GetInvoices rows err:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, out)
}

// GET /api/invoices/:id
func GetInvoiceByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	row := intconfig.DB.QueryRow(`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	d, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, InvoiceWithFareDTO{Invoice: d, Breakdown: fare.Calculate(d.TripParams())})
}

// POST /api/invoices
func CreateInvoice(c *gin.Context) {
	var d InvoiceDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateInvoice(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if strings.TrimSpace(d.InvoiceNo) == "" {
		year := d.InvoiceDate
		if len(year) >= 4 {
			year = year[:4]
		}
		no, err := nextInvoiceNo(year)
		if err != nil {
			log.Println("CreateInvoice numbering error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		d.InvoiceNo = no
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO invoices (
		  invoice_no, invoice_date,
		  customer_name, customer_phone, route_from, route_to, driver_name, vehicle_no,
		  vehicle_id, mode, start_km, end_km, rate, days,
		  toll, parking, permit, gst,
		  waiting_hours, hill_station, pet,
		  night_batta, night_drive, night_stay,
		  hourly_rate, duration_hours, package_price, included_km, included_hours, extra_hour_rate,
		  garage_buffer, allowance_mode, interstate_state,
		  extra_items, payment_status, notes
		) VALUES (
		  ?, ?,
		  ?, ?, ?, ?, ?, ?,
		  ?, ?, ?, ?, ?, ?,
		  ?, ?, ?, ?,
		  ?, ?, ?,
		  ?, ?, ?,
		  ?, ?, ?, ?, ?, ?,
		  ?, ?, ?,
		  ?, ?, ?
		)
	`,
		d.InvoiceNo, d.InvoiceDate,
		d.CustomerName, d.CustomerPhone, d.RouteFrom, d.RouteTo, d.DriverName, d.VehicleNo,
		d.VehicleID, d.Mode, d.StartKm, d.EndKm, d.Rate, d.Days,
		d.Toll, d.Parking, d.Permit, d.GST,
		d.WaitingHours, d.HillStation, d.Pet,
		d.NightBatta, d.NightDrive, d.NightStay,
		d.HourlyRate, d.DurationHours, d.PackagePrice, d.IncludedKm, d.IncludedHours, d.ExtraHourRate,
		d.GarageBuffer, d.AllowanceMode, d.InterstateState,
		marshalExtraItems(d.ExtraItems), d.PaymentStatus, d.Notes,
	)
	if err != nil {
		log.Println("CreateInvoice insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID, _ = res.LastInsertId()
	c.JSON(http.StatusCreated, InvoiceWithFareDTO{Invoice: d, Breakdown: fare.Calculate(d.TripParams())})
}

// PUT /api/invoices/:id
func UpdateInvoice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var d InvoiceDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateInvoice(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if _, err := intconfig.DB.Exec(`
		UPDATE invoices SET
		  invoice_no=?, invoice_date=?,
		  customer_name=?, customer_phone=?, route_from=?, route_to=?, driver_name=?, vehicle_no=?,
		  vehicle_id=?, mode=?, start_km=?, end_km=?, rate=?, days=?,
		  toll=?, parking=?, permit=?, gst=?,
		  waiting_hours=?, hill_station=?, pet=?,
		  night_batta=?, night_drive=?, night_stay=?,
		  hourly_rate=?, duration_hours=?, package_price=?, included_km=?, included_hours=?, extra_hour_rate=?,
		  garage_buffer=?, allowance_mode=?, interstate_state=?,
		  extra_items=?, payment_status=?, notes=?
		WHERE id=?
	`,
		d.InvoiceNo, d.InvoiceDate,
		d.CustomerName, d.CustomerPhone, d.RouteFrom, d.RouteTo, d.DriverName, d.VehicleNo,
		d.VehicleID, d.Mode, d.StartKm, d.EndKm, d.Rate, d.Days,
		d.Toll, d.Parking, d.Permit, d.GST,
		d.WaitingHours, d.HillStation, d.Pet,
		d.NightBatta, d.NightDrive, d.NightStay,
		d.HourlyRate, d.DurationHours, d.PackagePrice, d.IncludedKm, d.IncludedHours, d.ExtraHourRate,
		d.GarageBuffer, d.AllowanceMode, d.InterstateState,
		marshalExtraItems(d.ExtraItems), d.PaymentStatus, d.Notes,
		id,
	); err != nil {
		log.Println("UpdateInvoice update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID = id
	c.JSON(http.StatusOK, InvoiceWithFareDTO{Invoice: d, Breakdown: fare.Calculate(d.TripParams())})
}

// DELETE /api/invoices/:id
func DeleteInvoice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := intconfig.DB.Exec(`DELETE FROM invoices WHERE id=?`, id); err != nil {
		log.Println("DeleteInvoice delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
