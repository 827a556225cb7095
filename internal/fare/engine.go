package fare

import (
	"math"
	"strings"
)

// Tariff constants. Distances in km, amounts in INR.
const (
	localDropKm         = 30  // drop at or under this is a local trip
	localBaseKm         = 10  // km covered by the local base fee
	heavyLocalKm        = 50  // heavy-vehicle fixed package ceiling (one-way)
	outstationDropMinKm = 130 // minimum billable km for an outstation drop
	garageBufferKm      = 20  // shed-to-pickup dead mileage
	doubleBattaAvgKm    = 400 // daily average beyond which batta doubles
	petChargeAmount     = 500
	gstRate             = 0.05
)

// Hourly package defaults when the caller leaves them unset.
const (
	defaultIncludedHours = 8
	defaultIncludedKm    = 80
	defaultExtraHourRate = 250
)

// Calculate prices one trip against the static catalogs. It is pure and
// deterministic: no clock, no I/O, safe for concurrent callers. An
// unresolvable vehicle id returns an all-zero breakdown with the mode
// echoed; that is the only failure path and it never errors.
func Calculate(p TripParams) FareBreakdown {
	vc, ok := VehicleByID(p.VehicleID)
	if !ok {
		return FareBreakdown{Mode: p.Mode}
	}

	raw := p.EndKm - p.StartKm
	if raw < 0 {
		raw = 0
	}

	mode := p.Mode
	eff := raw

	// Hill routes have no practical one-way market; the car comes back
	// empty, so a hill drop is billed as an implicit round trip.
	if p.HillStation && mode == ModeDrop {
		eff = raw * 2
		mode = ModeRound
	}
	if p.GarageBuffer && mode == ModeRound {
		eff += garageBufferKm
	}

	days := p.Days
	if days < 1 {
		days = 1
	}

	rate := p.Rate
	if rate <= 0 {
		if mode == ModeRound {
			rate = vc.RoundRate
		} else {
			rate = vc.DropRate
		}
	}

	advisory := AdvisoryNone
	var charge float64

	switch mode {
	case ModeDrop:
		switch {
		case vc.Heavy():
			if raw <= heavyLocalKm {
				charge = vc.LocalPackage
				advisory = AdvisoryMinimumPackage
			} else {
				// Heavy vehicles never run one-way beyond local range;
				// bill the return leg at the round rate.
				eff = math.Max(vc.MinKm, raw*2)
				if p.Rate > 0 {
					rate = p.Rate
				} else {
					rate = vc.RoundRate
				}
				charge = eff * rate
				advisory = AdvisoryRoundTripOverride
			}
		case raw <= localDropKm:
			base := 250.0
			if vc.Body == BodySUV || vc.Body == BodyVan {
				base = 350
			}
			extra := raw - localBaseKm
			if extra < 0 {
				extra = 0
			}
			charge = base + extra*rate
		default:
			if eff < outstationDropMinKm {
				eff = outstationDropMinKm
			}
			charge = eff * rate
		}
	case ModeRound:
		if floor := vc.MinKm * float64(days); eff < floor {
			eff = floor
		}
		charge = eff * rate
	case ModeHourly:
		charge = hourlyCharge(p, vc, rate, raw)
	case ModeFixed:
		charge = p.PackagePrice
	case ModeCustom:
		for _, item := range p.ExtraItems {
			charge += item.Amount
		}
	}

	batta := driverBatta(p, vc, mode, raw, eff, days)

	nightBatta := p.NightBatta
	if nightBatta <= 0 && p.NightDrive {
		nightBatta = vc.NightCharge
	}

	waitRate := 100.0
	if vc.Seats > 7 {
		waitRate = 300
	}
	waiting := p.WaitingHours * waitRate

	var hill float64
	if p.HillStation {
		switch {
		case vc.Seats > 7:
			hill = 1500
		case vc.Body == BodySUV:
			hill = 500
		default:
			hill = 300
		}
	}

	var pet float64
	if p.Pet {
		pet = petChargeAmount
	}

	var statePermit float64
	if strings.TrimSpace(p.InterstateState) != "" {
		statePermit = PermitFee(p.InterstateState, vc.Body)
	}

	taxable := charge + batta + p.NightStay + nightBatta + waiting + hill + pet
	var gst float64
	if p.GST {
		gst = taxable * gstRate
	}
	// Tolls, parking and permits are statutory passthroughs, never taxed.
	exempt := p.Toll + p.Parking + p.Permit + statePermit

	return FareBreakdown{
		Total:           math.Round(taxable + gst + exempt),
		GST:             math.Round(gst),
		PreTax:          math.Round(taxable + exempt),
		RawKm:           raw,
		EffectiveKm:     eff,
		RateUsed:        rate,
		DistanceCharge:  math.Round(charge),
		DriverBatta:     batta,
		WaitingCharge:   math.Round(waiting),
		HillCharge:      hill,
		PetCharge:       pet,
		TaxableSubtotal: math.Round(taxable),
		ExemptSubtotal:  math.Round(exempt),
		Mode:            mode,
		NightBatta:      math.Round(nightBatta),
		NightStay:       math.Round(p.NightStay),
		Advisory:        advisory,
	}
}

// driverBatta pays the per-day stipend on round trips and on drops that
// leave local range. Auto mode doubles it when the daily average exceeds
// doubleBattaAvgKm (double-shift driving); the doubling never applies to
// drop trips.
func driverBatta(p TripParams, vc VehicleClass, mode TripMode, raw, eff float64, days int) float64 {
	if mode != ModeRound && !(mode == ModeDrop && raw > localDropKm) {
		return 0
	}
	mult := float64(days)
	switch p.AllowanceMode {
	case AllowanceSingle:
		// forced 1x per day
	case AllowanceDouble:
		mult *= 2
	default:
		if mode == ModeRound && eff/float64(days) > doubleBattaAvgKm {
			mult *= 2
		}
	}
	return vc.Batta * mult
}

func hourlyCharge(p TripParams, vc VehicleClass, rate, raw float64) float64 {
	if p.PackagePrice > 0 {
		includedHours := p.IncludedHours
		if includedHours <= 0 {
			includedHours = defaultIncludedHours
		}
		includedKm := p.IncludedKm
		if includedKm <= 0 {
			includedKm = defaultIncludedKm
		}
		extraRate := p.ExtraHourRate
		if extraRate <= 0 {
			extraRate = p.HourlyRate
		}
		if extraRate <= 0 {
			extraRate = defaultExtraHourRate
		}

		charge := p.PackagePrice
		if extraHours := p.DurationHours - includedHours; extraHours > 0 {
			charge += extraHours * extraRate
		}
		if rate > 0 {
			if extraKm := raw - includedKm; extraKm > 0 {
				charge += extraKm * rate
			}
		}
		return charge
	}

	hourly := p.HourlyRate
	if hourly <= 0 {
		if vc.Body == BodySUV {
			hourly = 450
		} else {
			hourly = 350
		}
	}
	charge := p.DurationHours * hourly

	var floor float64
	switch {
	case p.DurationHours <= 5:
		if vc.Body == BodySUV {
			floor = 2200
		} else {
			floor = 1800
		}
	case p.DurationHours <= 10:
		if vc.Body == BodySUV {
			floor = 4000
		} else {
			floor = 3200
		}
	}
	if charge < floor {
		charge = floor
	}
	return charge
}
