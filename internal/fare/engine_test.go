package fare

import "testing"

func TestCalculateDistanceCharges(t *testing.T) {
	tests := []struct {
		name         string
		p            TripParams
		wantCharge   float64
		wantBatta    float64
		wantEff      float64
		wantRate     float64
		wantMode     TripMode
		wantAdvisory Advisory
	}{
		{
			name:       "hatchback local drop 25km default rate",
			p:          TripParams{StartKm: 100, EndKm: 125, Mode: ModeDrop, VehicleID: "hatchback"},
			wantCharge: 475, // 250 base + 15km x 15
			wantBatta:  0,
			wantEff:    25,
			wantRate:   15,
			wantMode:   ModeDrop,
		},
		{
			name:       "hatchback drop under base km pays base only",
			p:          TripParams{StartKm: 0, EndKm: 8, Mode: ModeDrop, VehicleID: "hatchback"},
			wantCharge: 250,
			wantEff:    8,
			wantRate:   15,
			wantMode:   ModeDrop,
		},
		{
			name:       "suv local drop uses 350 base",
			p:          TripParams{StartKm: 0, EndKm: 20, Mode: ModeDrop, VehicleID: "suv"},
			wantCharge: 540, // 350 + 10 x 19
			wantEff:    20,
			wantRate:   19,
			wantMode:   ModeDrop,
		},
		{
			name:       "sedan outstation drop 150km",
			p:          TripParams{StartKm: 0, EndKm: 150, Mode: ModeDrop, VehicleID: "sedan"},
			wantCharge: 2400,
			wantBatta:  300,
			wantEff:    150,
			wantRate:   16,
			wantMode:   ModeDrop,
		},
		{
			name:       "sedan outstation drop below 130km floor",
			p:          TripParams{StartKm: 0, EndKm: 60, Mode: ModeDrop, VehicleID: "sedan"},
			wantCharge: 2080, // 130 x 16
			wantBatta:  300,
			wantEff:    130,
			wantRate:   16,
			wantMode:   ModeDrop,
		},
		{
			name:       "suv round trip 500km single day doubles batta",
			p:          TripParams{StartKm: 0, EndKm: 500, Mode: ModeRound, VehicleID: "suv", Days: 1},
			wantCharge: 9000,
			wantBatta:  800, // avg 500 > 400
			wantEff:    500,
			wantRate:   18,
			wantMode:   ModeRound,
		},
		{
			name:       "suv round trip 200km hits per-day floor",
			p:          TripParams{StartKm: 0, EndKm: 200, Mode: ModeRound, VehicleID: "suv", Days: 1},
			wantCharge: 5400, // 300 x 18
			wantBatta:  400,
			wantEff:    300,
			wantRate:   18,
			wantMode:   ModeRound,
		},
		{
			name:       "suv round trip two days floors at 600km",
			p:          TripParams{StartKm: 0, EndKm: 500, Mode: ModeRound, VehicleID: "suv", Days: 2},
			wantCharge: 10800,
			wantBatta:  800, // avg 300, no doubling
			wantEff:    600,
			wantRate:   18,
			wantMode:   ModeRound,
		},
		{
			name:       "garage buffer adds 20km to round trip",
			p:          TripParams{StartKm: 0, EndKm: 400, Mode: ModeRound, VehicleID: "suv", Days: 1, GarageBuffer: true},
			wantCharge: 7560, // 420 x 18
			wantBatta:  800,  // avg 420 > 400
			wantEff:    420,
			wantRate:   18,
			wantMode:   ModeRound,
		},
		{
			name:         "tempo short drop billed at local package",
			p:            TripParams{StartKm: 0, EndKm: 40, Mode: ModeDrop, VehicleID: "tempo"},
			wantCharge:   5500,
			wantBatta:    500, // 40km > 30 local limit
			wantEff:      40,
			wantRate:     25,
			wantMode:     ModeDrop,
			wantAdvisory: AdvisoryMinimumPackage,
		},
		{
			name:         "tempo long drop billed as round trip",
			p:            TripParams{StartKm: 0, EndKm: 100, Mode: ModeDrop, VehicleID: "tempo"},
			wantCharge:   7500, // max(300, 200) x 25
			wantBatta:    500,
			wantEff:      300,
			wantRate:     25,
			wantMode:     ModeDrop,
			wantAdvisory: AdvisoryRoundTripOverride,
		},
		{
			name:       "hill station drop becomes round trip",
			p:          TripParams{StartKm: 0, EndKm: 100, Mode: ModeDrop, VehicleID: "sedan", HillStation: true},
			wantCharge: 3500, // max(250, 200) x 14 round rate
			wantBatta:  300,
			wantEff:    250,
			wantRate:   14,
			wantMode:   ModeRound,
		},
		{
			name:       "explicit rate overrides catalog",
			p:          TripParams{StartKm: 0, EndKm: 150, Mode: ModeDrop, VehicleID: "sedan", Rate: 20},
			wantCharge: 3000,
			wantBatta:  300,
			wantEff:    150,
			wantRate:   20,
			wantMode:   ModeDrop,
		},
		{
			name:       "negative odometer pair clamps to zero distance",
			p:          TripParams{StartKm: 120, EndKm: 80, Mode: ModeDrop, VehicleID: "hatchback"},
			wantCharge: 250, // base fee only
			wantEff:    0,
			wantRate:   15,
			wantMode:   ModeDrop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.p)
			if got.DistanceCharge != tt.wantCharge {
				t.Errorf("DistanceCharge = %v, want %v", got.DistanceCharge, tt.wantCharge)
			}
			if got.DriverBatta != tt.wantBatta {
				t.Errorf("DriverBatta = %v, want %v", got.DriverBatta, tt.wantBatta)
			}
			if got.EffectiveKm != tt.wantEff {
				t.Errorf("EffectiveKm = %v, want %v", got.EffectiveKm, tt.wantEff)
			}
			if got.RateUsed != tt.wantRate {
				t.Errorf("RateUsed = %v, want %v", got.RateUsed, tt.wantRate)
			}
			if got.Mode != tt.wantMode {
				t.Errorf("Mode = %v, want %v", got.Mode, tt.wantMode)
			}
			if got.Advisory != tt.wantAdvisory {
				t.Errorf("Advisory = %v, want %v", got.Advisory, tt.wantAdvisory)
			}
		})
	}
}

func TestCalculateHourlyMode(t *testing.T) {
	tests := []struct {
		name       string
		p          TripParams
		wantCharge float64
	}{
		{
			name:       "package price with extra hours and km",
			p:          TripParams{StartKm: 0, EndKm: 100, Mode: ModeHourly, VehicleID: "suv", PackagePrice: 2500, DurationHours: 10},
			wantCharge: 3380, // 2500 + 2h x 250 + 20km x 19
		},
		{
			name:       "package price within included limits",
			p:          TripParams{StartKm: 0, EndKm: 60, Mode: ModeHourly, VehicleID: "sedan", PackagePrice: 2000, DurationHours: 6},
			wantCharge: 2000,
		},
		{
			name:       "package extra hours use explicit extra-hour rate",
			p:          TripParams{StartKm: 0, EndKm: 50, Mode: ModeHourly, VehicleID: "sedan", PackagePrice: 2000, DurationHours: 9, ExtraHourRate: 300},
			wantCharge: 2300,
		},
		{
			name:       "package extra hours fall back to hourly rate",
			p:          TripParams{StartKm: 0, EndKm: 50, Mode: ModeHourly, VehicleID: "sedan", PackagePrice: 2000, DurationHours: 9, HourlyRate: 400},
			wantCharge: 2400,
		},
		{
			name:       "no package short hire hits sedan floor",
			p:          TripParams{Mode: ModeHourly, VehicleID: "sedan", DurationHours: 4},
			wantCharge: 1800, // 4 x 350 = 1400 raised
		},
		{
			name:       "no package short hire hits suv floor",
			p:          TripParams{Mode: ModeHourly, VehicleID: "suv", DurationHours: 8},
			wantCharge: 4000, // 8 x 450 = 3600 raised
		},
		{
			name:       "no package long hire charged per hour",
			p:          TripParams{Mode: ModeHourly, VehicleID: "sedan", DurationHours: 12},
			wantCharge: 4200,
		},
		{
			name:       "explicit hourly rate respected",
			p:          TripParams{Mode: ModeHourly, VehicleID: "sedan", DurationHours: 10, HourlyRate: 500},
			wantCharge: 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.p)
			if got.DistanceCharge != tt.wantCharge {
				t.Errorf("DistanceCharge = %v, want %v", got.DistanceCharge, tt.wantCharge)
			}
		})
	}
}

func TestCalculateFixedAndCustomModes(t *testing.T) {
	fixed := Calculate(TripParams{StartKm: 0, EndKm: 0, Mode: ModeFixed, VehicleID: "sedan", PackagePrice: 3000})
	if fixed.DistanceCharge != 3000 {
		t.Errorf("fixed charge = %v, want 3000", fixed.DistanceCharge)
	}

	custom := Calculate(TripParams{Mode: ModeCustom, VehicleID: "sedan", ExtraItems: []ChargeItem{
		{Label: "Airport pickup", Amount: 800},
		{Label: "Extra luggage", Amount: 450},
	}})
	if custom.DistanceCharge != 1250 {
		t.Errorf("custom charge = %v, want 1250", custom.DistanceCharge)
	}
}

func TestCalculateAllowanceOverrides(t *testing.T) {
	// Forced single keeps batta at days x base even past the 400km average.
	single := Calculate(TripParams{StartKm: 0, EndKm: 500, Mode: ModeRound, VehicleID: "suv", Days: 1, AllowanceMode: AllowanceSingle})
	if single.DriverBatta != 400 {
		t.Errorf("single batta = %v, want 400", single.DriverBatta)
	}

	double := Calculate(TripParams{StartKm: 0, EndKm: 150, Mode: ModeDrop, VehicleID: "sedan", AllowanceMode: AllowanceDouble})
	if double.DriverBatta != 600 {
		t.Errorf("double batta = %v, want 600", double.DriverBatta)
	}

	// Auto doubling never applies to drop trips.
	drop := Calculate(TripParams{StartKm: 0, EndKm: 600, Mode: ModeDrop, VehicleID: "sedan"})
	if drop.DriverBatta != 300 {
		t.Errorf("drop batta = %v, want 300", drop.DriverBatta)
	}
}

func TestCalculateSurcharges(t *testing.T) {
	b := Calculate(TripParams{
		StartKm: 0, EndKm: 500, Mode: ModeRound, VehicleID: "suv", Days: 1,
		WaitingHours: 3, Pet: true, NightDrive: true, NightStay: 600, HillStation: true,
	})
	if b.WaitingCharge != 300 {
		t.Errorf("WaitingCharge = %v, want 300", b.WaitingCharge)
	}
	if b.PetCharge != 500 {
		t.Errorf("PetCharge = %v, want 500", b.PetCharge)
	}
	if b.NightBatta != 400 {
		t.Errorf("NightBatta = %v, want 400", b.NightBatta)
	}
	if b.NightStay != 600 {
		t.Errorf("NightStay = %v, want 600", b.NightStay)
	}
	if b.HillCharge != 500 {
		t.Errorf("HillCharge = %v, want 500", b.HillCharge)
	}

	// Larger vehicles wait at 300/hr and pay the 1500 hill tier.
	big := Calculate(TripParams{StartKm: 0, EndKm: 400, Mode: ModeRound, VehicleID: "tempo", Days: 1, WaitingHours: 2, HillStation: true})
	if big.WaitingCharge != 600 {
		t.Errorf("tempo WaitingCharge = %v, want 600", big.WaitingCharge)
	}
	if big.HillCharge != 1500 {
		t.Errorf("tempo HillCharge = %v, want 1500", big.HillCharge)
	}

	// Manual night amount wins over the catalog default.
	manual := Calculate(TripParams{StartKm: 0, EndKm: 400, Mode: ModeRound, VehicleID: "suv", Days: 1, NightBatta: 350, NightDrive: true})
	if manual.NightBatta != 350 {
		t.Errorf("manual NightBatta = %v, want 350", manual.NightBatta)
	}
}

func TestCalculateTaxAndTotals(t *testing.T) {
	b := Calculate(TripParams{
		StartKm: 0, EndKm: 150, Mode: ModeDrop, VehicleID: "sedan",
		GST: true, Toll: 240, Parking: 60, InterstateState: "KA",
	})
	if b.TaxableSubtotal != 2700 { // 2400 + 300 batta
		t.Errorf("TaxableSubtotal = %v, want 2700", b.TaxableSubtotal)
	}
	if b.GST != 135 {
		t.Errorf("GST = %v, want 135", b.GST)
	}
	if b.ExemptSubtotal != 1150 { // 240 + 60 + 850 sedan KA permit
		t.Errorf("ExemptSubtotal = %v, want 1150", b.ExemptSubtotal)
	}
	if b.PreTax != 3850 {
		t.Errorf("PreTax = %v, want 3850", b.PreTax)
	}
	if b.Total != 3985 {
		t.Errorf("Total = %v, want 3985", b.Total)
	}

	noGST := Calculate(TripParams{StartKm: 0, EndKm: 150, Mode: ModeDrop, VehicleID: "sedan", Toll: 100})
	if noGST.GST != 0 {
		t.Errorf("GST = %v, want 0", noGST.GST)
	}
	if noGST.Total != 2800 { // 2400 + 300 + 100
		t.Errorf("Total = %v, want 2800", noGST.Total)
	}
}

func TestCalculateInterstatePermit(t *testing.T) {
	b := Calculate(TripParams{StartKm: 0, EndKm: 500, Mode: ModeRound, VehicleID: "suv", Days: 2, InterstateState: "KA"})
	if b.ExemptSubtotal != 1250 {
		t.Errorf("ExemptSubtotal = %v, want 1250", b.ExemptSubtotal)
	}

	// Manual and automatic permit amounts stack in the exempt bucket.
	both := Calculate(TripParams{StartKm: 0, EndKm: 500, Mode: ModeRound, VehicleID: "suv", Days: 2, InterstateState: "KA", Permit: 500})
	if both.ExemptSubtotal != 1750 {
		t.Errorf("ExemptSubtotal = %v, want 1750", both.ExemptSubtotal)
	}

	// Permit money is never taxed.
	taxed := Calculate(TripParams{StartKm: 0, EndKm: 500, Mode: ModeRound, VehicleID: "suv", Days: 2, InterstateState: "KA", GST: true})
	if taxed.GST != taxed.TaxableSubtotal*gstRate {
		t.Errorf("GST computed over exempt bucket: gst=%v taxable=%v", taxed.GST, taxed.TaxableSubtotal)
	}
}

func TestCalculateUnknownVehicle(t *testing.T) {
	b := Calculate(TripParams{StartKm: 0, EndKm: 100, Mode: ModeDrop, VehicleID: "rickshaw", GST: true, Toll: 100})
	if !b.Empty() {
		t.Fatalf("expected empty breakdown, got %+v", b)
	}
	if b.Mode != ModeDrop {
		t.Errorf("Mode = %v, want %v", b.Mode, ModeDrop)
	}
	if b.Total != 0 || b.GST != 0 || b.ExemptSubtotal != 0 || b.DriverBatta != 0 {
		t.Errorf("expected all-zero amounts, got %+v", b)
	}
	if b.Advisory != AdvisoryNone {
		t.Errorf("Advisory = %v, want none", b.Advisory)
	}
}

func TestEffectiveDistanceNeverBelowRaw(t *testing.T) {
	params := []TripParams{
		{StartKm: 0, EndKm: 40, Mode: ModeDrop, VehicleID: "sedan"},
		{StartKm: 0, EndKm: 250, Mode: ModeDrop, VehicleID: "sedan"},
		{StartKm: 0, EndKm: 100, Mode: ModeRound, VehicleID: "suv", Days: 1},
		{StartKm: 0, EndKm: 800, Mode: ModeRound, VehicleID: "suv", Days: 2, GarageBuffer: true},
		{StartKm: 0, EndKm: 90, Mode: ModeDrop, VehicleID: "tempo"},
	}
	for _, p := range params {
		b := Calculate(p)
		if b.EffectiveKm < b.RawKm {
			t.Errorf("EffectiveKm %v < RawKm %v for %+v", b.EffectiveKm, b.RawKm, p)
		}
	}
}
