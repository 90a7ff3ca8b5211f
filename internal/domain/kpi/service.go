// Package kpi computes clinic-level aggregates over the live registries.
// Everything is recomputed on demand; with in-memory stores a full scan
// is cheaper than keeping counters coherent.
package kpi

import (
	"math"

	"github.com/ancare/ancare/internal/domain/anc"
	"github.com/ancare/ancare/internal/domain/delivery"
	"github.com/ancare/ancare/internal/domain/staff"
	"github.com/ancare/ancare/pkg/clinical"
)

// Summary is the clinic dashboard payload.
type Summary struct {
	TotalPatients   int `json:"total_patients"`
	TotalDoctors    int `json:"total_doctors"`
	TotalNurses     int `json:"total_nurses"`
	TotalDeliveries int `json:"total_deliveries"`

	VisitTypes     map[string]int `json:"visit_types"`
	RiskCategories map[string]int `json:"risk_categories"`
	DeliveryTypes  map[string]int `json:"delivery_types"`
	AgeGroups      map[string]int `json:"age_groups"`

	MeanBMI float64 `json:"mean_bmi"`
}

// Service reads the registries it aggregates over.
type Service struct {
	patients   *anc.Service
	roster     *staff.Service
	deliveries *delivery.Service
}

func NewService(patients *anc.Service, roster *staff.Service, deliveries *delivery.Service) *Service {
	return &Service{patients: patients, roster: roster, deliveries: deliveries}
}

// Summarize recomputes the full dashboard from current state.
func (s *Service) Summarize() Summary {
	patients := s.patients.List()
	deliveries := s.deliveries.List()

	sum := Summary{
		TotalPatients:   len(patients),
		TotalDoctors:    len(s.roster.ListDoctors()),
		TotalNurses:     len(s.roster.ListNurses()),
		TotalDeliveries: len(deliveries),
		VisitTypes:      map[string]int{},
		RiskCategories:  map[string]int{},
		DeliveryTypes:   map[string]int{},
		AgeGroups:       map[string]int{},
	}

	var bmiTotal float64
	var bmiCount int
	for _, p := range patients {
		if p.TypeOfVisit != "" {
			sum.VisitTypes[string(p.TypeOfVisit)]++
		}
		if p.RiskCategory != nil {
			sum.RiskCategories[string(*p.RiskCategory)]++
		} else {
			sum.RiskCategories[string(clinical.RiskLow)]++
		}
		sum.AgeGroups[ageGroup(p.Age)]++
		if p.BMI > 0 {
			bmiTotal += p.BMI
			bmiCount++
		}
	}
	if bmiCount > 0 {
		sum.MeanBMI = math.Round(bmiTotal/float64(bmiCount)*10) / 10
	}

	for _, d := range deliveries {
		sum.DeliveryTypes[string(d.Details.DeliveryType)]++
	}
	return sum
}

func ageGroup(age int) string {
	switch {
	case age <= 25:
		return "20-25"
	case age <= 30:
		return "26-30"
	case age <= 35:
		return "31-35"
	default:
		return "36+"
	}
}
