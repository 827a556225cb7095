package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	intconfig "taxidesk/internal/config"
	"taxidesk/internal/fare"
	"taxidesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// QuotationDTO is the slim pre-booking counterpart of an invoice: enough
// trip inputs to price the offer, a validity window, nothing else.
type QuotationDTO struct {
	ID          int64  `json:"id"`
	QuotationNo string `json:"quotationNo"`
	QuoteDate   string `json:"quoteDate"`
	ValidUntil  string `json:"validUntil"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	RouteFrom     string `json:"routeFrom"`
	RouteTo       string `json:"routeTo"`

	VehicleID string  `json:"vehicleId"`
	Mode      string  `json:"mode"`
	StartKm   float64 `json:"startKm"`
	EndKm     float64 `json:"endKm"`
	Rate      float64 `json:"rate"`
	Days      int     `json:"days"`
	GST       bool    `json:"gst"`

	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type QuotationWithFareDTO struct {
	Quotation QuotationDTO       `json:"quotation"`
	Breakdown fare.FareBreakdown `json:"breakdown"`
	Expired   bool               `json:"expired"`
}

func (d QuotationDTO) TripParams() fare.TripParams {
	return fare.TripParams{
		StartKm:   d.StartKm,
		EndKm:     d.EndKm,
		Rate:      d.Rate,
		Mode:      fare.TripMode(d.Mode),
		VehicleID: d.VehicleID,
		Days:      d.Days,
		GST:       d.GST,
	}
}

func (d QuotationDTO) expired(now time.Time) bool {
	if strings.TrimSpace(d.ValidUntil) == "" {
		return false
	}
	t, err := utils.ParseDate(d.ValidUntil)
	if err != nil {
		return false
	}
	return now.After(t.AddDate(0, 0, 1))
}

const quotationColumns = `
	id, quotation_no, quote_date, COALESCE(valid_until,''),
	customer_name, customer_phone, route_from, route_to,
	vehicle_id, mode, start_km, end_km, rate, days, gst,
	COALESCE(status,'open'), COALESCE(notes,'')
`

func scanQuotation(row rowScanner) (QuotationDTO, error) {
	var d QuotationDTO
	err := row.Scan(
		&d.ID, &d.QuotationNo, &d.QuoteDate, &d.ValidUntil,
		&d.CustomerName, &d.CustomerPhone, &d.RouteFrom, &d.RouteTo,
		&d.VehicleID, &d.Mode, &d.StartKm, &d.EndKm, &d.Rate, &d.Days, &d.GST,
		&d.Status, &d.Notes,
	)
	return d, err
}

func nextQuotationNo(year string) (string, error) {
	var n int
	err := intconfig.DB.QueryRow(
		`SELECT COUNT(*) FROM quotations WHERE quotation_no LIKE ?`, "QTN-"+year+"-%",
	).Scan(&n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("QTN-%s-%04d", year, n+1), nil
}

func validateQuotation(d *QuotationDTO) string {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.VehicleID = strings.TrimSpace(strings.ToLower(d.VehicleID))
	d.Mode = strings.TrimSpace(strings.ToLower(d.Mode))
	if d.CustomerName == "" {
		return "customerName required"
	}
	if d.QuoteDate == "" {
		return "quoteDate required"
	}
	if _, ok := fare.VehicleByID(d.VehicleID); !ok {
		return "vehicle class not found"
	}
	if strings.TrimSpace(d.Status) == "" {
		d.Status = "open"
	}
	return ""
}

// GET /api/quotations
func GetQuotations(c *gin.Context) {
	rows, err := intconfig.DB.Query(`SELECT ` + quotationColumns + ` FROM quotations ORDER BY quote_date DESC, id DESC`)
	if err != nil {
		log.Println("GetQuotations query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	now := time.Now()
	out := []QuotationWithFareDTO{}
	for rows.Next() {
		d, err := scanQuotation(rows)
		if err != nil {
			log.Println("GetQuotations scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, QuotationWithFareDTO{
			Quotation: d,
			Breakdown: fare.Calculate(d.TripParams()),
			Expired:   d.expired(now),
		})
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, out)
}

// GET /api/quotations/:id
func GetQuotationByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	row := intconfig.DB.QueryRow(`SELECT `+quotationColumns+` FROM quotations WHERE id = ?`, id)
	d, err := scanQuotation(row)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "quotation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, QuotationWithFareDTO{
		Quotation: d,
		Breakdown: fare.Calculate(d.TripParams()),
		Expired:   d.expired(time.Now()),
	})
}

// POST /api/quotations
func CreateQuotation(c *gin.Context) {
	var d QuotationDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateQuotation(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if strings.TrimSpace(d.QuotationNo) == "" {
		year := d.QuoteDate
		if len(year) >= 4 {
			year = year[:4]
		}
		no, err := nextQuotationNo(year)
		if err != nil {
			log.Println("CreateQuotation numbering error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		d.QuotationNo = no
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO quotations (
		  quotation_no, quote_date, valid_until,
		  customer_name, customer_phone, route_from, route_to,
		  vehicle_id, mode, start_km, end_km, rate, days, gst,
		  status, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.QuotationNo, d.QuoteDate, d.ValidUntil,
		d.CustomerName, d.CustomerPhone, d.RouteFrom, d.RouteTo,
		d.VehicleID, d.Mode, d.StartKm, d.EndKm, d.Rate, d.Days, d.GST,
		d.Status, d.Notes,
	)
	if err != nil {
		log.Println("CreateQuotation insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID, _ = res.LastInsertId()
	c.JSON(http.StatusCreated, QuotationWithFareDTO{
		Quotation: d,
		Breakdown: fare.Calculate(d.TripParams()),
		Expired:   d.expired(time.Now()),
	})
}

// PUT /api/quotations/:id
func UpdateQuotation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var d QuotationDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateQuotation(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if _, err := intconfig.DB.Exec(`
		UPDATE quotations SET
		  quotation_no=?, quote_date=?, valid_until=?,
		  customer_name=?, customer_phone=?, route_from=?, route_to=?,
		  vehicle_id=?, mode=?, start_km=?, end_km=?, rate=?, days=?, gst=?,
		  status=?, notes=?
		WHERE id=?
	`,
		d.QuotationNo, d.QuoteDate, d.ValidUntil,
		d.CustomerName, d.CustomerPhone, d.RouteFrom, d.RouteTo,
		d.VehicleID, d.Mode, d.StartKm, d.EndKm, d.Rate, d.Days, d.GST,
		d.Status, d.Notes,
		id,
	); err != nil {
		log.Println("UpdateQuotation update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID = id
	c.JSON(http.StatusOK, QuotationWithFareDTO{
		Quotation: d,
		Breakdown: fare.Calculate(d.TripParams()),
		Expired:   d.expired(time.Now()),
	})
}

// DELETE /api/quotations/:id
func DeleteQuotation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := intconfig.DB.Exec(`DELETE FROM quotations WHERE id=?`, id); err != nil {
		log.Println("DeleteQuotation delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
