package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/repository"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

// CarService is the car directory: it owns listing creation, search,
// updates and removal, and is the ownership authority consumed by the
// service-ticket workflows.
type CarService struct {
	cars  repository.CarRepository
	users repository.UserRepository
}

// NewCarService constructs the service.
func NewCarService(carRepo repository.CarRepository, userRepo repository.UserRepository) *CarService {
	return &CarService{cars: carRepo, users: userRepo}
}

// CarCreateInput describes a new listing.
type CarCreateInput struct {
	UserID             string
	Make               string
	Model              string
	Variant            string
	YearOfManufacture  int
	RegistrationYear   int
	RegistrationNumber string
	Color              string
	FuelType           domain.FuelType
	Transmission       domain.Transmission
	EngineDisplacement int
	Kilometers         int
	VIN                string
	Ownership          int
	InsuranceValid     *time.Time
	RTOLocation        string
	Features           *domain.CarFeatures
	Price              float64
	Condition          *domain.CarCondition
	Description        string
	Location           *domain.CarLocation
}

// CarUpdateInput carries partial listing updates. VIN, registration number
// and owner are immutable.
type CarUpdateInput struct {
	Make               *string
	Model              *string
	Variant            *string
	YearOfManufacture  *int
	RegistrationYear   *int
	Color              *string
	FuelType           *domain.FuelType
	Transmission       *domain.Transmission
	EngineDisplacement *int
	Kilometers         *int
	Ownership          *int
	InsuranceValid     *time.Time
	RTOLocation        *string
	Features           *domain.CarFeatures
	Price              *float64
	Available          *bool
	Condition          *domain.CarCondition
	Description        *string
	Location           *domain.CarLocation
}

// CarView is a listing with its owner reference resolved.
type CarView struct {
	Car   domain.Car
	Owner *UserRef
}

// AddCar validates and creates a listing for a customer.
func (s *CarService) AddCar(ctx context.Context, input CarCreateInput) (*domain.Car, error) {
	if input.UserID == "" {
		return nil, apperrors.NewBadRequest("User ID is required")
	}
	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}
	if user.UserType != domain.UserTypeCustomer {
		return nil, apperrors.NewForbidden("Only customers can add cars")
	}
	if missing := missingCarFields(input); len(missing) > 0 {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
	}

	exists, err := s.cars.ExistsByVINOrRegistration(ctx, input.VIN, input.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewBadRequest("A car with this VIN or registration number already exists")
	}

	car := &domain.Car{
		UserID:             input.UserID,
		Make:               input.Make,
		Model:              input.Model,
		Variant:            input.Variant,
		YearOfManufacture:  input.YearOfManufacture,
		RegistrationYear:   input.RegistrationYear,
		RegistrationNumber: input.RegistrationNumber,
		Color:              input.Color,
		FuelType:           input.FuelType,
		Transmission:       input.Transmission,
		EngineDisplacement: input.EngineDisplacement,
		Kilometers:         input.Kilometers,
		VIN:                input.VIN,
		Ownership:          input.Ownership,
		InsuranceValid:     input.InsuranceValid,
		RTOLocation:        input.RTOLocation,
		Features:           domain.CarFeatures{PowerSteering: true},
		Price:              input.Price,
		Available:          true,
		Condition:          domain.CarCondition{Exterior: domain.ConditionGood, Interior: domain.ConditionGood},
		Description:        input.Description,
	}
	if input.Features != nil {
		car.Features = *input.Features
	}
	if input.Condition != nil {
		car.Condition = *input.Condition
	}
	if input.Location != nil {
		car.Location = *input.Location
	}

	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// ListCars searches listings, newest first, with owner references resolved.
func (s *CarService) ListCars(ctx context.Context, filter repository.CarFilter) ([]CarView, error) {
	cars, err := s.cars.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.resolveOwners(ctx, cars)
}

// ListUserCars returns all listings belonging to a user.
func (s *CarService) ListUserCars(ctx context.Context, userID string) ([]CarView, error) {
	return s.ListCars(ctx, repository.CarFilter{UserID: &userID})
}

// UpdateCar applies supplied fields to a listing owned by the caller.
func (s *CarService) UpdateCar(ctx context.Context, carID, userID string, input CarUpdateInput) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Car")
		}
		return nil, err
	}
	if car.UserID != userID {
		return nil, apperrors.NewForbidden("Not authorized to update this car")
	}

	applyCarUpdate(car, input)
	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// DeleteCar removes a listing owned by the caller.
func (s *CarService) DeleteCar(ctx context.Context, carID, userID string) error {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Car")
		}
		return err
	}
	if car.UserID != userID {
		return apperrors.NewForbidden("Not authorized to delete this car")
	}
	return s.cars.Delete(ctx, carID)
}

// GetCar fetches a single listing.
func (s *CarService) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Car")
		}
		return nil, err
	}
	return car, nil
}

func (s *CarService) resolveOwners(ctx context.Context, cars []domain.Car) ([]CarView, error) {
	views := make([]CarView, 0, len(cars))
	owners := map[string]*UserRef{}
	for i := range cars {
		view := CarView{Car: cars[i]}
		if ref, seen := owners[cars[i].UserID]; seen {
			view.Owner = ref
		} else {
			user, err := s.users.GetByID(ctx, cars[i].UserID)
			if err != nil && err != pgx.ErrNoRows {
				return nil, err
			}
			if user != nil {
				view.Owner = &UserRef{ID: user.ID, Email: user.Email, UserType: user.UserType}
			}
			owners[cars[i].UserID] = view.Owner
		}
		views = append(views, view)
	}
	return views, nil
}

func missingCarFields(input CarCreateInput) []string {
	var missing []string
	requireString := func(name, val string) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, name)
		}
	}
	requireInt := func(name string, val int) {
		if val == 0 {
			missing = append(missing, name)
		}
	}
	requireString("make", input.Make)
	requireString("model", input.Model)
	requireString("variant", input.Variant)
	requireInt("yearOfManufacture", input.YearOfManufacture)
	requireInt("registrationYear", input.RegistrationYear)
	requireString("registrationNumber", input.RegistrationNumber)
	requireString("color", input.Color)
	requireString("fuelType", string(input.FuelType))
	requireString("transmission", string(input.Transmission))
	requireInt("engineDisplacement", input.EngineDisplacement)
	requireInt("kilometers", input.Kilometers)
	requireString("vin", input.VIN)
	requireInt("ownership", input.Ownership)
	if input.InsuranceValid == nil {
		missing = append(missing, "insuranceValid")
	}
	requireString("rtoLocation", input.RTOLocation)
	if input.Price == 0 {
		missing = append(missing, "price")
	}
	requireString("description", input.Description)
	return missing
}

func applyCarUpdate(car *domain.Car, input CarUpdateInput) {
	if input.Make != nil {
		car.Make = *input.Make
	}
	if input.Model != nil {
		car.Model = *input.Model
	}
	if input.Variant != nil {
		car.Variant = *input.Variant
	}
	if input.YearOfManufacture != nil {
		car.YearOfManufacture = *input.YearOfManufacture
	}
	if input.RegistrationYear != nil {
		car.RegistrationYear = *input.RegistrationYear
	}
	if input.Color != nil {
		car.Color = *input.Color
	}
	if input.FuelType != nil {
		car.FuelType = *input.FuelType
	}
	if input.Transmission != nil {
		car.Transmission = *input.Transmission
	}
	if input.EngineDisplacement != nil {
		car.EngineDisplacement = *input.EngineDisplacement
	}
	if input.Kilometers != nil {
		car.Kilometers = *input.Kilometers
	}
	if input.Ownership != nil {
		car.Ownership = *input.Ownership
	}
	if input.InsuranceValid != nil {
		car.InsuranceValid = input.InsuranceValid
	}
	if input.RTOLocation != nil {
		car.RTOLocation = *input.RTOLocation
	}
	if input.Features != nil {
		car.Features = *input.Features
	}
	if input.Price != nil {
		car.Price = *input.Price
	}
	if input.Available != nil {
		car.Available = *input.Available
	}
	if input.Condition != nil {
		car.Condition = *input.Condition
	}
	if input.Description != nil {
		car.Description = *input.Description
	}
	if input.Location != nil {
		car.Location = *input.Location
	}
}
