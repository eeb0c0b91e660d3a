package services

import (
	"fmt"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
)

// Service type constants for the pricing estimator.
const (
	ServiceTypeStandard = "standard"
	ServiceTypeExpress  = "express"
	ServiceTypePriority = "priority"
)

type routeRate struct {
	Base  float64
	PerKg float64
}

// Per-route pricing in CAD.
var shippingRates = map[string]routeRate{
	models.RouteBDToCA: {Base: 15, PerKg: 12},
	models.RouteCAToBD: {Base: 12, PerKg: 10},
}

var serviceMultipliers = map[string]float64{
	ServiceTypeStandard: 1,
	ServiceTypeExpress:  1.5,
	ServiceTypePriority: 2,
}

// Upper-bound transit days per service type, used for the estimated
// delivery date quoted at booking time.
var serviceTransitDays = map[string]int{
	ServiceTypeStandard: 7,
	ServiceTypeExpress:  4,
	ServiceTypePriority: 3,
}

// QuoteRequest is the input to the shipping cost estimator.
type QuoteRequest struct {
	Route       string  `json:"route" binding:"required,oneof=bd-to-ca ca-to-bd"`
	WeightKg    float64 `json:"weight_kg" binding:"required,gt=0"`
	ServiceType string  `json:"service_type" binding:"required,oneof=standard express priority"`
	Insurance   bool    `json:"insurance"`
	Fragile     bool    `json:"fragile"`
}

// Quote is an itemized shipping cost breakdown.
type Quote struct {
	Base      float64 `json:"base"`
	Weight    float64 `json:"weight"`
	Service   float64 `json:"service"`
	Insurance float64 `json:"insurance"`
	Fragile   float64 `json:"fragile"`
	Total     float64 `json:"total"`
}

// QuoteShipping computes the itemized shipping cost for a request. Pure
// pricing arithmetic; it touches no stored state.
func QuoteShipping(req *QuoteRequest) (*Quote, error) {
	rates, ok := shippingRates[req.Route]
	if !ok {
		return nil, fmt.Errorf("unknown route %q", req.Route)
	}
	multiplier, ok := serviceMultipliers[req.ServiceType]
	if !ok {
		return nil, fmt.Errorf("unknown service type %q", req.ServiceType)
	}

	base := rates.Base
	weight := req.WeightKg * rates.PerKg
	service := (base + weight) * (multiplier - 1)

	var insurance float64
	if req.Insurance {
		insurance = (base + weight) * 0.05
		if insurance < 10 {
			insurance = 10
		}
	}
	var fragile float64
	if req.Fragile {
		fragile = 8
	}

	return &Quote{
		Base:      base,
		Weight:    weight,
		Service:   service,
		Insurance: insurance,
		Fragile:   fragile,
		Total:     base + weight + service + insurance + fragile,
	}, nil
}

// TransitDays returns the quoted transit window for a service type,
// defaulting to standard.
func TransitDays(serviceType string) int {
	if days, ok := serviceTransitDays[serviceType]; ok {
		return days
	}
	return serviceTransitDays[ServiceTypeStandard]
}
