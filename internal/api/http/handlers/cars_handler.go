package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carmarket-service/internal/api/dto"
	"github.com/spec-kit/carmarket-service/internal/repository"
	"github.com/spec-kit/carmarket-service/internal/service"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

// CarsHandler manages the car directory endpoints.
type CarsHandler struct {
	service *service.CarService
}

// NewCarsHandler constructs handler.
func NewCarsHandler(carService *service.CarService) *CarsHandler {
	return &CarsHandler{service: carService}
}

// Add POST /cars/add.
func (h *CarsHandler) Add(c *fiber.Ctx) error {
	var req dto.AddCarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}

	car, err := h.service.AddCar(c.UserContext(), service.CarCreateInput{
		UserID:             req.UserID,
		Make:               req.Make,
		Model:              req.Model,
		Variant:            req.Variant,
		YearOfManufacture:  req.YearOfManufacture,
		RegistrationYear:   req.RegistrationYear,
		RegistrationNumber: req.RegistrationNumber,
		Color:              req.Color,
		FuelType:           req.FuelType,
		Transmission:       req.Transmission,
		EngineDisplacement: req.EngineDisplacement,
		Kilometers:         req.Kilometers,
		VIN:                req.VIN,
		Ownership:          req.Ownership,
		InsuranceValid:     req.InsuranceValid,
		RTOLocation:        req.RTOLocation,
		Features:           req.Features,
		Price:              req.Price,
		Condition:          req.Condition,
		Description:        req.Description,
		Location:           req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CarEnvelope{
		Message: "Car added successfully",
		Car:     dto.NewCarResponse(car),
	})
}

// List POST /cars/all.
func (h *CarsHandler) List(c *fiber.Ctx) error {
	var req dto.ListCarsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}

	views, err := h.service.ListCars(c.UserContext(), repository.CarFilter{
		UserID:       req.UserID,
		Make:         req.Make,
		Model:        req.Model,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		City:         req.City,
		State:        req.State,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		MinYear:      req.MinYear,
		MaxYear:      req.MaxYear,
	})
	if err != nil {
		return err
	}
	return c.JSON(carListEnvelope(views))
}

// ListForUser POST /cars/user.
func (h *CarsHandler) ListForUser(c *fiber.Ctx) error {
	var req dto.UserCarsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.UserID == "" {
		return apperrors.NewBadRequest("userId is required")
	}

	views, err := h.service.ListUserCars(c.UserContext(), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(carListEnvelope(views))
}

// Update POST /cars/update.
func (h *CarsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.CarID == "" || req.UserID == "" {
		return apperrors.NewBadRequest("carId and userId are required")
	}

	car, err := h.service.UpdateCar(c.UserContext(), req.CarID, req.UserID, service.CarUpdateInput{
		Make:               req.Make,
		Model:              req.Model,
		Variant:            req.Variant,
		YearOfManufacture:  req.YearOfManufacture,
		RegistrationYear:   req.RegistrationYear,
		Color:              req.Color,
		FuelType:           req.FuelType,
		Transmission:       req.Transmission,
		EngineDisplacement: req.EngineDisplacement,
		Kilometers:         req.Kilometers,
		Ownership:          req.Ownership,
		InsuranceValid:     req.InsuranceValid,
		RTOLocation:        req.RTOLocation,
		Features:           req.Features,
		Price:              req.Price,
		Available:          req.Available,
		Condition:          req.Condition,
		Description:        req.Description,
		Location:           req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.CarEnvelope{
		Message: "Car updated successfully",
		Car:     dto.NewCarResponse(car),
	})
}

// Delete POST /cars/delete.
func (h *CarsHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteCarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.CarID == "" || req.UserID == "" {
		return apperrors.NewBadRequest("carId and userId are required")
	}

	if err := h.service.DeleteCar(c.UserContext(), req.CarID, req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Car deleted successfully"})
}

func carListEnvelope(views []service.CarView) dto.CarListEnvelope {
	items := make([]dto.CarResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.NewCarViewResponse(&views[i]))
	}
	return dto.CarListEnvelope{Count: len(items), Cars: items}
}
