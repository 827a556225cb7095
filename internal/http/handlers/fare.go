package handlers

import (
	"net/http"

	"taxidesk/internal/fare"
	"taxidesk/internal/http/middleware"
	"taxidesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// QuoteResponse wraps a breakdown with its display advisory, if any.
type QuoteResponse struct {
	Breakdown fare.FareBreakdown `json:"breakdown"`
	Advisory  string             `json:"advisory,omitempty"`
}

// POST /api/fare/quote
func Quote(c *gin.Context) {
	var p fare.TripParams
	if !BindJSONOrError(c, &p) {
		return
	}

	if _, ok := fare.VehicleByID(p.VehicleID); !ok {
		RespondError(c, http.StatusUnprocessableEntity, "vehicle class not found", nil)
		return
	}

	bd := fare.Calculate(p)
	utils.LogEvent(middleware.GetRequestID(c), "fare", "quote",
		"vehicle="+p.VehicleID+" mode="+string(bd.Mode)+" total="+utils.FormatMoney(bd.Total))

	c.JSON(http.StatusOK, QuoteResponse{
		Breakdown: bd,
		Advisory:  bd.Advisory.Message(),
	})
}

// GET /api/fare/vehicles
func GetVehicleClasses(c *gin.Context) {
	c.JSON(http.StatusOK, fare.Vehicles())
}

// GET /api/fare/permits
func GetPermitStates(c *gin.Context) {
	states := fare.PermitStates()
	out := make([]gin.H, 0, len(states))
	for _, s := range states {
		out = append(out, gin.H{
			"state":     s,
			"hatchback": fare.PermitFee(s, fare.BodyHatchback),
			"sedan":     fare.PermitFee(s, fare.BodySedan),
			"suv":       fare.PermitFee(s, fare.BodySUV),
			"van":       fare.PermitFee(s, fare.BodyVan),
		})
	}
	c.JSON(http.StatusOK, out)
}
