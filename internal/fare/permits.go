package fare

import (
	"sort"
	"strings"
)

// Flat interstate permit fees per destination state and body type,
// covering a multi-day permit window. Heavy classes share the van row.
var permitFees = map[string]map[BodyType]float64{
	"KA": {BodyHatchback: 600, BodySedan: 850, BodySUV: 1250, BodyVan: 3000},
	"TN": {BodyHatchback: 500, BodySedan: 700, BodySUV: 1000, BodyVan: 2500},
	"AP": {BodyHatchback: 600, BodySedan: 800, BodySUV: 1200, BodyVan: 3000},
	"TS": {BodyHatchback: 600, BodySedan: 800, BodySUV: 1200, BodyVan: 3000},
	"KL": {BodyHatchback: 500, BodySedan: 650, BodySUV: 950, BodyVan: 2200},
	"PY": {BodyHatchback: 300, BodySedan: 400, BodySUV: 600, BodyVan: 1500},
	"MH": {BodyHatchback: 800, BodySedan: 1000, BodySUV: 1500, BodyVan: 3500},
	"GA": {BodySedan: 900, BodySUV: 1300, BodyVan: 3000},
}

// defaultPermitFee covers states or classes the table does not list.
const defaultPermitFee = 2000

// PermitFee returns the flat permit fee for a destination state and body
// type, falling back to the state's van rate, then the hardcoded default.
func PermitFee(state string, body BodyType) float64 {
	fees, ok := permitFees[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return defaultPermitFee
	}
	if fee, ok := fees[body]; ok {
		return fee
	}
	if fee, ok := fees[BodyVan]; ok {
		return fee
	}
	return defaultPermitFee
}

// PermitStates lists the tabulated state codes for listing endpoints.
func PermitStates() []string {
	out := make([]string, 0, len(permitFees))
	for state := range permitFees {
		out = append(out, state)
	}
	sort.Strings(out)
	return out
}
