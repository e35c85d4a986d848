package domain

import "time"

// ServiceStatus enumerates lifecycle states for service tickets.
// The conventional forward path is pending -> inspection -> quotation-shared
// -> approved -> in-progress -> completed, with cancelled reachable from any
// non-terminal state, but transitions are not enforced.
type ServiceStatus string

const (
	ServiceStatusPending         ServiceStatus = "pending"
	ServiceStatusInspection      ServiceStatus = "inspection"
	ServiceStatusQuotationShared ServiceStatus = "quotation-shared"
	ServiceStatusApproved        ServiceStatus = "approved"
	ServiceStatusInProgress      ServiceStatus = "in-progress"
	ServiceStatusCompleted       ServiceStatus = "completed"
	ServiceStatusCancelled       ServiceStatus = "cancelled"
)

// ValidServiceStatus reports whether s is a known status value.
func ValidServiceStatus(s ServiceStatus) bool {
	switch s {
	case ServiceStatusPending, ServiceStatusInspection, ServiceStatusQuotationShared,
		ServiceStatusApproved, ServiceStatusInProgress, ServiceStatusCompleted,
		ServiceStatusCancelled:
		return true
	}
	return false
}

// ConsumableItem is a named part with an optional quantity and price
// (engine oil, filters, plugs, fluids).
type ConsumableItem struct {
	Required bool     `json:"required"`
	Name     string   `json:"name,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// PartItem is a named part without a quantity (filters, battery).
type PartItem struct {
	Required bool     `json:"required"`
	Name     string   `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// AxleItem covers work billed per front/rear axle (discs, pads).
type AxleItem struct {
	Required bool     `json:"required"`
	Front    bool     `json:"front,omitempty"`
	Rear     bool     `json:"rear,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// SteeringItem covers wheel alignment and balancing.
type SteeringItem struct {
	Required  bool     `json:"required"`
	Alignment bool     `json:"alignment,omitempty"`
	Balancing bool     `json:"balancing,omitempty"`
	Price     *float64 `json:"price,omitempty"`
}

// DescribedItem is free-text work with an optional price (clutch, AC).
type DescribedItem struct {
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// OtherItem is an ad-hoc line item outside the fixed categories.
type OtherItem struct {
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// ServiceDetails is the fixed record of itemized work on a ticket.
// Stored as a single JSONB document on the ticket row.
type ServiceDetails struct {
	EngineOil  *ConsumableItem `json:"engineOil,omitempty"`
	OilFilter  *PartItem       `json:"oilFilter,omitempty"`
	AirFilter  *PartItem       `json:"airFilter,omitempty"`
	FuelFilter *PartItem       `json:"fuelFilter,omitempty"`
	SparkPlugs *ConsumableItem `json:"sparkPlugs,omitempty"`
	BrakeFluid *ConsumableItem `json:"brakeFluid,omitempty"`
	BrakeDiscs *AxleItem       `json:"brakeDiscs,omitempty"`
	BrakePads  *AxleItem       `json:"brakePads,omitempty"`
	GearboxOil *ConsumableItem `json:"gearboxOil,omitempty"`
	Coolant    *ConsumableItem `json:"coolant,omitempty"`
	Steering   *SteeringItem   `json:"steering,omitempty"`
	Clutch     *DescribedItem  `json:"clutch,omitempty"`
	Battery    *PartItem       `json:"battery,omitempty"`
	ACService  *DescribedItem  `json:"acService,omitempty"`
	Other      []OtherItem     `json:"other,omitempty"`
}

// CategoryPrices returns the optional price of every fixed category, in the
// order the categories are declared. Nil entries for absent categories.
func (d *ServiceDetails) CategoryPrices() []*float64 {
	if d == nil {
		return nil
	}
	prices := make([]*float64, 0, 14)
	if d.EngineOil != nil {
		prices = append(prices, d.EngineOil.Price)
	}
	if d.OilFilter != nil {
		prices = append(prices, d.OilFilter.Price)
	}
	if d.AirFilter != nil {
		prices = append(prices, d.AirFilter.Price)
	}
	if d.FuelFilter != nil {
		prices = append(prices, d.FuelFilter.Price)
	}
	if d.SparkPlugs != nil {
		prices = append(prices, d.SparkPlugs.Price)
	}
	if d.BrakeFluid != nil {
		prices = append(prices, d.BrakeFluid.Price)
	}
	if d.BrakeDiscs != nil {
		prices = append(prices, d.BrakeDiscs.Price)
	}
	if d.BrakePads != nil {
		prices = append(prices, d.BrakePads.Price)
	}
	if d.GearboxOil != nil {
		prices = append(prices, d.GearboxOil.Price)
	}
	if d.Coolant != nil {
		prices = append(prices, d.Coolant.Price)
	}
	if d.Steering != nil {
		prices = append(prices, d.Steering.Price)
	}
	if d.Clutch != nil {
		prices = append(prices, d.Clutch.Price)
	}
	if d.Battery != nil {
		prices = append(prices, d.Battery.Price)
	}
	if d.ACService != nil {
		prices = append(prices, d.ACService.Price)
	}
	return prices
}

// ServiceTicket is the aggregate for a vehicle service request.
type ServiceTicket struct {
	ID             string
	UserID         string
	CarID          string
	Status         ServiceStatus
	Details        *ServiceDetails
	TotalQuotation float64
	LaborCharges   float64
	FinalAmount    float64
	ScheduledDate  *time.Time
	CompletionDate *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
