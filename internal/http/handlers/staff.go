package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	intconfig "taxidesk/internal/config"

	"github.com/gin-gonic/gin"
)

type StaffDTO struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Role          string  `json:"role"` // driver, cleaner, office
	MonthlySalary float64 `json:"monthlySalary"`
	JoinedDate    string  `json:"joinedDate"`
	Status        string  `json:"status"`
}

type StaffAdvanceDTO struct {
	ID          int64   `json:"id"`
	StaffID     int64   `json:"staffId"`
	AdvanceDate string  `json:"advanceDate"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
}

func validateStaff(d *StaffDTO) string {
	d.Name = strings.TrimSpace(d.Name)
	d.Role = strings.ToLower(strings.TrimSpace(d.Role))
	if d.Name == "" {
		return "name required"
	}
	if d.Role == "" {
		d.Role = "driver"
	}
	if d.MonthlySalary < 0 {
		return "monthlySalary cannot be negative"
	}
	if strings.TrimSpace(d.Status) == "" {
		d.Status = "active"
	}
	return ""
}

// GET /api/staff
func GetStaff(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, name, COALESCE(phone,''), role, monthly_salary, COALESCE(joined_date,''), COALESCE(status,'active')
		FROM staff
		ORDER BY name ASC
	`)
	if err != nil {
		log.Println("GetStaff query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []StaffDTO{}
	for rows.Next() {
		var d StaffDTO
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Role, &d.MonthlySalary, &d.JoinedDate, &d.Status); err != nil {
			log.Println("GetStaff scan error:", err)
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

// GET /api/staff/:id
func GetStaffByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var d StaffDTO
	err = intconfig.DB.QueryRow(`
		SELECT id, name, COALESCE(phone,''), role, monthly_salary, COALESCE(joined_date,''), COALESCE(status,'active')
		FROM staff WHERE id = ?
	`, id).Scan(&d.ID, &d.Name, &d.Phone, &d.Role, &d.MonthlySalary, &d.JoinedDate, &d.Status)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, d)
}

// POST /api/staff
func CreateStaff(c *gin.Context) {
	var d StaffDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateStaff(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO staff (name, phone, role, monthly_salary, joined_date, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.Name, d.Phone, d.Role, d.MonthlySalary, d.JoinedDate, d.Status)
	if err != nil {
		log.Println("CreateStaff insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID, _ = res.LastInsertId()
	c.JSON(http.StatusCreated, d)
}

// PUT /api/staff/:id
func UpdateStaff(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var d StaffDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if msg := validateStaff(&d); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if _, err := intconfig.DB.Exec(`
		UPDATE staff SET name=?, phone=?, role=?, monthly_salary=?, joined_date=?, status=?
		WHERE id=?
	`, d.Name, d.Phone, d.Role, d.MonthlySalary, d.JoinedDate, d.Status, id); err != nil {
		log.Println("UpdateStaff update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID = id
	c.JSON(http.StatusOK, d)
}

// DELETE /api/staff/:id
func DeleteStaff(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := intconfig.DB.Exec(`DELETE FROM staff WHERE id=?`, id); err != nil {
		log.Println("DeleteStaff delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/staff/:id/advances
func GetStaffAdvances(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	rows, err := intconfig.DB.Query(`
		SELECT id, staff_id, advance_date, amount, COALESCE(notes,'')
		FROM staff_advances
		WHERE staff_id = ?
		ORDER BY advance_date DESC, id DESC
	`, id)
	if err != nil {
		log.Println("GetStaffAdvances query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []StaffAdvanceDTO{}
	for rows.Next() {
		var d StaffAdvanceDTO
		if err := rows.Scan(&d.ID, &d.StaffID, &d.AdvanceDate, &d.Amount, &d.Notes); err != nil {
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

// POST /api/staff/:id/advances
func CreateStaffAdvance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var d StaffAdvanceDTO
	if !BindJSONOrError(c, &d) {
		return
	}
	if d.AdvanceDate == "" || d.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "advanceDate and positive amount required"})
		return
	}

	var exists int64
	err = intconfig.DB.QueryRow(`SELECT id FROM staff WHERE id=?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO staff_advances (staff_id, advance_date, amount, notes)
		VALUES (?, ?, ?, ?)
	`, id, d.AdvanceDate, d.Amount, d.Notes)
	if err != nil {
		log.Println("CreateStaffAdvance insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	d.ID, _ = res.LastInsertId()
	d.StaffID = id
	c.JSON(http.StatusCreated, d)
}

// DELETE /api/staff/:id/advances/:advanceId
func DeleteStaffAdvance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	advID, err := strconv.ParseInt(c.Param("advanceId"), 10, 64)
	if err != nil || advID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid advance id"})
		return
	}

	if _, err := intconfig.DB.Exec(
		`DELETE FROM staff_advances WHERE id=? AND staff_id=?`, advID, id,
	); err != nil {
		log.Println("DeleteStaffAdvance delete error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
