package fare

// TripMode selects which tariff branch prices the trip.
type TripMode string

const (
	ModeDrop   TripMode = "drop"   // one-way point-to-point hire
	ModeRound  TripMode = "round"  // outstation round trip, per-day minimum km
	ModeHourly TripMode = "hourly" // local/hourly package
	ModeFixed  TripMode = "fixed"  // agreed lump-sum price
	ModeCustom TripMode = "custom" // free-form line items
)

type BodyType string

const (
	BodyHatchback BodyType = "hatchback"
	BodySedan     BodyType = "sedan"
	BodySUV       BodyType = "suv"
	BodyVan       BodyType = "van"
)

// VehicleClass is one row of the static rate catalog. Rates are INR per km.
// LocalPackage > 0 marks a heavy vehicle (tempo/minibus/bus) whose short
// local drops are billed at a fixed package price instead of per-km.
type VehicleClass struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	DropRate     float64  `json:"dropRate"`
	RoundRate    float64  `json:"roundRate"`
	Seats        int      `json:"seats"`
	Body         BodyType `json:"body"`
	MinKm        float64  `json:"minKm"`
	Batta        float64  `json:"batta"`
	NightCharge  float64  `json:"nightCharge"`
	LocalPackage float64  `json:"localPackage,omitempty"`
}

func (v VehicleClass) Heavy() bool { return v.LocalPackage > 0 }

// AllowanceMode controls the driver batta multiplier.
type AllowanceMode string

const (
	AllowanceAuto   AllowanceMode = "auto"
	AllowanceSingle AllowanceMode = "single"
	AllowanceDouble AllowanceMode = "double"
)

// ChargeItem is one caller-supplied line in custom mode.
type ChargeItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// TripParams carries every knob a quote can take. Only StartKm/EndKm,
// Mode and VehicleID are required; zero values fall back to catalog
// defaults. Fields irrelevant to the selected mode are ignored.
type TripParams struct {
	StartKm   float64  `json:"startKm"`
	EndKm     float64  `json:"endKm"`
	Rate      float64  `json:"rate"` // explicit per-km override, 0 = catalog
	Mode      TripMode `json:"mode"`
	VehicleID string   `json:"vehicleId"`
	Days      int      `json:"days"`

	Toll    float64 `json:"toll"`
	Parking float64 `json:"parking"`
	Permit  float64 `json:"permit"` // manually entered permit amount
	GST     bool    `json:"gst"`

	WaitingHours float64 `json:"waitingHours"`
	HillStation  bool    `json:"hillStation"`
	Pet          bool    `json:"pet"`

	NightBatta float64 `json:"nightBatta"` // manual night-driving amount
	NightDrive bool    `json:"nightDrive"`
	NightStay  float64 `json:"nightStay"`

	HourlyRate    float64 `json:"hourlyRate"`
	DurationHours float64 `json:"durationHours"`
	PackagePrice  float64 `json:"packagePrice"`
	IncludedKm    float64 `json:"includedKm"`
	IncludedHours float64 `json:"includedHours"`
	ExtraHourRate float64 `json:"extraHourRate"`

	ExtraItems []ChargeItem `json:"extraItems,omitempty"`

	GarageBuffer    bool          `json:"garageBuffer"`
	AllowanceMode   AllowanceMode `json:"allowanceMode"`
	InterstateState string        `json:"interstateState"`
}

// Advisory is a machine-readable note about how the fare was derived.
// Display text stays at the UI/PDF boundary.
type Advisory int

const (
	AdvisoryNone Advisory = iota
	AdvisoryMinimumPackage
	AdvisoryRoundTripOverride
)

func (a Advisory) Message() string {
	switch a {
	case AdvisoryMinimumPackage:
		return "minimum package charge applied"
	case AdvisoryRoundTripOverride:
		return "one-way drop billed as round trip"
	default:
		return ""
	}
}

// FareBreakdown is the itemized result of one calculation. Currency
// fields are rounded to whole rupees except DriverBatta (kept as
// computed) and RateUsed (kept as a decimal per-km rate).
type FareBreakdown struct {
	Total           float64  `json:"total"`
	GST             float64  `json:"gst"`
	PreTax          float64  `json:"preTax"`
	RawKm           float64  `json:"rawKm"`
	EffectiveKm     float64  `json:"effectiveKm"`
	RateUsed        float64  `json:"rateUsed"`
	DistanceCharge  float64  `json:"distanceCharge"`
	DriverBatta     float64  `json:"driverBatta"`
	WaitingCharge   float64  `json:"waitingCharge"`
	HillCharge      float64  `json:"hillCharge"`
	PetCharge       float64  `json:"petCharge"`
	TaxableSubtotal float64  `json:"taxableSubtotal"`
	ExemptSubtotal  float64  `json:"exemptSubtotal"`
	Mode            TripMode `json:"mode"`
	NightBatta      float64  `json:"nightBatta"`
	NightStay       float64  `json:"nightStay"`
	Advisory        Advisory `json:"advisory"`
}

// Empty reports whether the breakdown is the zero-value result returned
// when the vehicle id could not be resolved. Callers must check this
// instead of expecting an error.
func (b FareBreakdown) Empty() bool {
	return b.RateUsed == 0 && b.DistanceCharge == 0
}
