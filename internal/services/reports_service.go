package services

import (
	"math"

	"taxidesk/internal/fare"
	"taxidesk/internal/repositories"
)

// MonthlyReport is the owner's month-at-a-glance: earnings recomputed
// from each invoice's stored inputs, set against the expense book.
type MonthlyReport struct {
	Month string `json:"month"`

	InvoiceCount int     `json:"invoiceCount"`
	GrossRevenue float64 `json:"grossRevenue"`
	GSTCollected float64 `json:"gstCollected"`
	Passthrough  float64 `json:"passthrough"` // tolls, parking, permits
	TotalKm      float64 `json:"totalKm"`

	ExpenseTotal      float64            `json:"expenseTotal"`
	ExpenseByCategory map[string]float64 `json:"expenseByCategory"`

	NetProfit float64 `json:"netProfit"`

	ByVehicle map[string]VehicleReport `json:"byVehicle"`
}

type VehicleReport struct {
	Trips   int     `json:"trips"`
	Revenue float64 `json:"revenue"`
	Km      float64 `json:"km"`
}

type ReportsService struct {
	InvoiceRepo repositories.InvoiceRepository
	ExpenseRepo repositories.ExpenseRepository
}

// MonthlySummary aggregates one calendar month ("YYYY-MM").
func (s ReportsService) MonthlySummary(month string) (MonthlyReport, error) {
	rep := MonthlyReport{
		Month:             month,
		ExpenseByCategory: map[string]float64{},
		ByVehicle:         map[string]VehicleReport{},
	}

	invoices, err := s.InvoiceRepo.ListMonth(month)
	if err != nil {
		return rep, err
	}
	for _, rec := range invoices {
		bd := fare.Calculate(rec.TripParams())
		if bd.Empty() {
			continue
		}
		rep.InvoiceCount++
		rep.GrossRevenue += bd.Total
		rep.GSTCollected += bd.GST
		rep.Passthrough += bd.ExemptSubtotal
		rep.TotalKm += bd.RawKm

		v := rep.ByVehicle[rec.VehicleID]
		v.Trips++
		v.Revenue += bd.Total
		v.Km += bd.RawKm
		rep.ByVehicle[rec.VehicleID] = v
	}

	byCategory, err := s.ExpenseRepo.SumMonth(month)
	if err != nil {
		return rep, err
	}
	for cat, sum := range byCategory {
		rep.ExpenseByCategory[cat] = sum
		rep.ExpenseTotal += sum
	}

	// GST and passthroughs are collected on behalf of others; profit is
	// what remains of the operator's own earnings after expenses.
	rep.NetProfit = math.Round(rep.GrossRevenue - rep.GSTCollected - rep.Passthrough - rep.ExpenseTotal)
	return rep, nil
}
