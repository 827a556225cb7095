package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	intconfig "taxidesk/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type UserDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password,omitempty"` // write-only
}

// GET /api/users
func GetUsers(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, name, username, email, phone, role, status
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		log.Println("GetUsers query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []UserDTO{}
	for rows.Next() {
		var u UserDTO
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status); err != nil {
			log.Println("GetUsers scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, out)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var u UserDTO
	err = intconfig.DB.QueryRow(`
		SELECT id, name, username, email, phone, role, status
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, u)
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var u UserDTO
	if !BindJSONOrError(c, &u) {
		return
	}

	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	if u.Username == "" || u.Email == "" || u.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password required"})
		return
	}
	if strings.TrimSpace(u.Role) == "" {
		u.Role = "staff"
	}
	if strings.TrimSpace(u.Status) == "" {
		u.Status = "active"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, u.Name, u.Username, u.Email, u.Phone, string(hash), u.Role, u.Status)
	if err != nil {
		log.Println("CreateUser insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	u.ID, _ = res.LastInsertId()
	u.Password = ""
	c.JSON(http.StatusCreated, u)
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var u UserDTO
	if !BindJSONOrError(c, &u) {
		return
	}

	if u.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}
		_, err = intconfig.DB.Exec(`
			UPDATE users SET name=?, username=?, email=?, phone=?, password_hash=?, role=?, status=?, updated_at=NOW()
			WHERE id=?
		`, u.Name, u.Username, u.Email, u.Phone, string(hash), u.Role, u.Status, id)
		if err != nil {
			log.Println("UpdateUser update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else {
		_, err = intconfig.DB.Exec(`
			UPDATE users SET name=?, username=?, email=?, phone=?, role=?, status=?, updated_at=NOW()
			WHERE id=?
		`, u.Name, u.Username, u.Email, u.Phone, u.Role, u.Status, id)
		if err != nil {
			log.Println("UpdateUser update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	u.ID = id
	u.Password = ""
	c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := intconfig.DB.Exec(`DELETE FROM users WHERE id=?`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
