package services

import (
	"math"
	"strings"

	"taxidesk/internal/fare"
	"taxidesk/internal/repositories"
)

// PayrollEntry is one staff member's settlement for a month.
type PayrollEntry struct {
	StaffID  int64   `json:"staffId"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Salary   float64 `json:"salary"`
	Batta    float64 `json:"batta"` // driver batta earned on the month's trips
	Advances float64 `json:"advances"`
	NetPay   float64 `json:"netPay"`
	CarryFwd float64 `json:"carryForward"` // advances exceeding pay roll into next month
}

type PayrollService struct {
	StaffRepo   repositories.StaffRepository
	InvoiceRepo repositories.InvoiceRepository
}

// ComputeNetPay settles salary plus batta against advances taken. Pay
// never goes negative; the excess is reported as a carry-forward.
func ComputeNetPay(salary, batta, advances float64) (netPay, carryForward float64) {
	net := math.Round(salary + batta - advances)
	if net < 0 {
		return 0, -net
	}
	return net, 0
}

// RunMonth builds the payroll sheet for month ("YYYY-MM") from active
// staff, their advances and the batta earned on invoiced trips.
func (s PayrollService) RunMonth(month string) ([]PayrollEntry, error) {
	staff, err := s.StaffRepo.ListActive()
	if err != nil {
		return nil, err
	}
	advances, err := s.StaffRepo.AdvanceTotalsMonth(month)
	if err != nil {
		return nil, err
	}
	batta, err := s.battaByDriver(month)
	if err != nil {
		return nil, err
	}

	out := make([]PayrollEntry, 0, len(staff))
	for _, rec := range staff {
		adv := advances[rec.ID]
		var earned float64
		if rec.Role == "driver" {
			earned = batta[strings.ToLower(strings.TrimSpace(rec.Name))]
		}
		net, carry := ComputeNetPay(rec.MonthlySalary, earned, adv)
		out = append(out, PayrollEntry{
			StaffID:  rec.ID,
			Name:     rec.Name,
			Role:     rec.Role,
			Salary:   rec.MonthlySalary,
			Batta:    earned,
			Advances: adv,
			NetPay:   net,
			CarryFwd: carry,
		})
	}
	return out, nil
}

// battaByDriver recomputes each invoice's breakdown and credits the
// driver batta to the named driver, keyed by lowercased name.
func (s PayrollService) battaByDriver(month string) (map[string]float64, error) {
	invoices, err := s.InvoiceRepo.ListMonth(month)
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for _, rec := range invoices {
		name := strings.ToLower(strings.TrimSpace(rec.DriverName))
		if name == "" {
			continue
		}
		bd := fare.Calculate(rec.TripParams())
		if bd.Empty() {
			continue
		}
		out[name] += bd.DriverBatta
	}
	return out, nil
}
