package dto

import (
	"time"

	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/service"
)

// AddCarRequest payload.
type AddCarRequest struct {
	UserID             string               `json:"userId"`
	Make               string               `json:"make"`
	Model              string               `json:"model"`
	Variant            string               `json:"variant"`
	YearOfManufacture  int                  `json:"yearOfManufacture"`
	RegistrationYear   int                  `json:"registrationYear"`
	RegistrationNumber string               `json:"registrationNumber"`
	Color              string               `json:"color"`
	FuelType           domain.FuelType      `json:"fuelType"`
	Transmission       domain.Transmission  `json:"transmission"`
	EngineDisplacement int                  `json:"engineDisplacement"`
	Kilometers         int                  `json:"kilometers"`
	VIN                string               `json:"vin"`
	Ownership          int                  `json:"ownership"`
	InsuranceValid     *time.Time           `json:"insuranceValid"`
	RTOLocation        string               `json:"rtoLocation"`
	Features           *domain.CarFeatures  `json:"features"`
	Price              float64              `json:"price"`
	Condition          *domain.CarCondition `json:"condition"`
	Description        string               `json:"description"`
	Location           *domain.CarLocation  `json:"location"`
}

// ListCarsRequest payload. Absent fields match everything.
type ListCarsRequest struct {
	UserID       *string              `json:"userId"`
	Make         *string              `json:"make"`
	Model        *string              `json:"model"`
	FuelType     *domain.FuelType     `json:"fuelType"`
	Transmission *domain.Transmission `json:"transmission"`
	City         *string              `json:"city"`
	State        *string              `json:"state"`
	MinPrice     *float64             `json:"minPrice"`
	MaxPrice     *float64             `json:"maxPrice"`
	MinYear      *int                 `json:"minYear"`
	MaxYear      *int                 `json:"maxYear"`
}

// UserCarsRequest payload.
type UserCarsRequest struct {
	UserID string `json:"userId"`
}

// UpdateCarRequest payload. VIN, registration number and owner cannot change.
type UpdateCarRequest struct {
	CarID              string               `json:"carId"`
	UserID             string               `json:"userId"`
	Make               *string              `json:"make"`
	Model              *string              `json:"model"`
	Variant            *string              `json:"variant"`
	YearOfManufacture  *int                 `json:"yearOfManufacture"`
	RegistrationYear   *int                 `json:"registrationYear"`
	Color              *string              `json:"color"`
	FuelType           *domain.FuelType     `json:"fuelType"`
	Transmission       *domain.Transmission `json:"transmission"`
	EngineDisplacement *int                 `json:"engineDisplacement"`
	Kilometers         *int                 `json:"kilometers"`
	Ownership          *int                 `json:"ownership"`
	InsuranceValid     *time.Time           `json:"insuranceValid"`
	RTOLocation        *string              `json:"rtoLocation"`
	Features           *domain.CarFeatures  `json:"features"`
	Price              *float64             `json:"price"`
	Available          *bool                `json:"available"`
	Condition          *domain.CarCondition `json:"condition"`
	Description        *string              `json:"description"`
	Location           *domain.CarLocation  `json:"location"`
}

// DeleteCarRequest payload.
type DeleteCarRequest struct {
	CarID  string `json:"carId"`
	UserID string `json:"userId"`
}

// CarResponse is the full listing representation.
type CarResponse struct {
	ID                 string               `json:"id"`
	UserID             string               `json:"userId"`
	Make               string               `json:"make"`
	Model              string               `json:"model"`
	Variant            string               `json:"variant"`
	YearOfManufacture  int                  `json:"yearOfManufacture"`
	RegistrationYear   int                  `json:"registrationYear"`
	RegistrationNumber string               `json:"registrationNumber"`
	Color              string               `json:"color"`
	FuelType           domain.FuelType      `json:"fuelType"`
	Transmission       domain.Transmission  `json:"transmission"`
	EngineDisplacement int                  `json:"engineDisplacement"`
	Kilometers         int                  `json:"kilometers"`
	VIN                string               `json:"vin"`
	Ownership          int                  `json:"ownership"`
	InsuranceValid     *time.Time           `json:"insuranceValid,omitempty"`
	RTOLocation        string               `json:"rtoLocation"`
	Features           domain.CarFeatures   `json:"features"`
	Price              float64              `json:"price"`
	Available          bool                 `json:"available"`
	Condition          domain.CarCondition  `json:"condition"`
	Description        string               `json:"description"`
	Location           domain.CarLocation   `json:"location"`
	Owner              *ServiceUserRef      `json:"owner,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// CarEnvelope wraps single-listing responses.
type CarEnvelope struct {
	Message string      `json:"message"`
	Car     CarResponse `json:"car"`
}

// CarListEnvelope wraps listing responses.
type CarListEnvelope struct {
	Count int           `json:"count"`
	Cars  []CarResponse `json:"cars"`
}

// NewCarResponse maps a bare listing.
func NewCarResponse(car *domain.Car) CarResponse {
	return CarResponse{
		ID:                 car.ID,
		UserID:             car.UserID,
		Make:               car.Make,
		Model:              car.Model,
		Variant:            car.Variant,
		YearOfManufacture:  car.YearOfManufacture,
		RegistrationYear:   car.RegistrationYear,
		RegistrationNumber: car.RegistrationNumber,
		Color:              car.Color,
		FuelType:           car.FuelType,
		Transmission:       car.Transmission,
		EngineDisplacement: car.EngineDisplacement,
		Kilometers:         car.Kilometers,
		VIN:                car.VIN,
		Ownership:          car.Ownership,
		InsuranceValid:     car.InsuranceValid,
		RTOLocation:        car.RTOLocation,
		Features:           car.Features,
		Price:              car.Price,
		Available:          car.Available,
		Condition:          car.Condition,
		Description:        car.Description,
		Location:           car.Location,
		CreatedAt:          car.CreatedAt,
		UpdatedAt:          car.UpdatedAt,
	}
}

// NewCarViewResponse maps a listing with its owner reference resolved.
func NewCarViewResponse(view *service.CarView) CarResponse {
	resp := NewCarResponse(&view.Car)
	if view.Owner != nil {
		resp.Owner = &ServiceUserRef{ID: view.Owner.ID, Email: view.Owner.Email, UserType: view.Owner.UserType}
	}
	return resp
}
