package api

import (
	"log"
	stdhttp "net/http"

	intconfig "taxidesk/internal/config"
	h "taxidesk/internal/http/handlers"
	"taxidesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Fare engine (no auth: the public quote widget hits these)
		fareGroup := api.Group("/fare")
		fareGroup.POST("/quote", h.Quote)
		fareGroup.GET("/vehicles", h.GetVehicleClasses)
		fareGroup.GET("/permits", h.GetPermitStates)

		// Invoices
		invoices := api.Group("/invoices", middleware.RequireAuth())
		invoices.GET("", h.GetInvoices)
		invoices.GET("/:id", h.GetInvoiceByID)
		invoices.GET("/:id/pdf", h.GetInvoicePDF)
		invoices.POST("", h.CreateInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)

		// Quotations
		quotations := api.Group("/quotations", middleware.RequireAuth())
		quotations.GET("", h.GetQuotations)
		quotations.GET("/:id", h.GetQuotationByID)
		quotations.GET("/:id/pdf", h.GetQuotationPDF)
		quotations.POST("", h.CreateQuotation)
		quotations.PUT("/:id", h.UpdateQuotation)
		quotations.DELETE("/:id", h.DeleteQuotation)

		// Expenses
		expenses := api.Group("/expenses", middleware.RequireAuth())
		expenses.GET("", h.GetExpenses)
		expenses.GET("/summary", h.GetExpenseSummary)
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)

		// Staff & payroll (owner/admin only)
		staff := api.Group("/staff", middleware.RequireAuth(), middleware.RequireRoles("owner", "admin"))
		staff.GET("", h.GetStaff)
		staff.GET("/:id", h.GetStaffByID)
		staff.POST("", h.CreateStaff)
		staff.PUT("/:id", h.UpdateStaff)
		staff.DELETE("/:id", h.DeleteStaff)
		staff.GET("/:id/advances", h.GetStaffAdvances)
		staff.POST("/:id/advances", h.CreateStaffAdvance)
		staff.DELETE("/:id/advances/:advanceId", h.DeleteStaffAdvance)

		api.GET("/payroll", middleware.RequireAuth(), middleware.RequireRoles("owner", "admin"), h.GetPayroll)

		// Reports
		reports := api.Group("/reports", middleware.RequireAuth(), middleware.RequireRoles("owner", "admin"))
		reports.GET("/monthly", h.GetMonthlyReport)
		reports.GET("/expenses", h.GetExpenseSummary)

		// Users (owner/admin only)
		users := api.Group("/users", middleware.RequireAuth(), middleware.RequireRoles("owner", "admin"))
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	h.SetRouter(r)
	return r
}
