package fare

import "strings"

// Static rate catalog. Loaded once, read-only; tariff changes ship as a
// new build, never as runtime mutation.
var vehicleClasses = []VehicleClass{
	{ID: "hatchback", Name: "Hatchback (Swift, Celerio)", DropRate: 15, RoundRate: 13, Seats: 4, Body: BodyHatchback, MinKm: 250, Batta: 300, NightCharge: 300},
	{ID: "sedan", Name: "Sedan (Dzire, Etios)", DropRate: 16, RoundRate: 14, Seats: 4, Body: BodySedan, MinKm: 250, Batta: 300, NightCharge: 300},
	{ID: "suv", Name: "SUV (Innova, Ertiga)", DropRate: 19, RoundRate: 18, Seats: 7, Body: BodySUV, MinKm: 300, Batta: 400, NightCharge: 400},
	{ID: "suv_crysta", Name: "Innova Crysta", DropRate: 21, RoundRate: 20, Seats: 7, Body: BodySUV, MinKm: 300, Batta: 500, NightCharge: 500},
	{ID: "tempo", Name: "Tempo Traveller (12 seater)", DropRate: 25, RoundRate: 25, Seats: 12, Body: BodyVan, MinKm: 300, Batta: 500, NightCharge: 500, LocalPackage: 5500},
	{ID: "minibus", Name: "Mini Bus (21 seater)", DropRate: 33, RoundRate: 33, Seats: 21, Body: BodyVan, MinKm: 300, Batta: 600, NightCharge: 600, LocalPackage: 8000},
	{ID: "bus", Name: "Bus (49 seater)", DropRate: 45, RoundRate: 45, Seats: 49, Body: BodyVan, MinKm: 300, Batta: 800, NightCharge: 800, LocalPackage: 12000},
}

var vehicleByID = func() map[string]VehicleClass {
	m := make(map[string]VehicleClass, len(vehicleClasses))
	for _, v := range vehicleClasses {
		m[v.ID] = v
	}
	return m
}()

// VehicleByID resolves a catalog entry. ok=false means the engine must
// degrade to an all-zero breakdown rather than fail.
func VehicleByID(id string) (VehicleClass, bool) {
	v, ok := vehicleByID[strings.ToLower(strings.TrimSpace(id))]
	return v, ok
}

// Vehicles returns a copy of the catalog for listing endpoints.
func Vehicles() []VehicleClass {
	out := make([]VehicleClass, len(vehicleClasses))
	copy(out, vehicleClasses)
	return out
}
