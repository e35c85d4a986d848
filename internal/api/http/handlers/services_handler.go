package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carmarket-service/internal/api/dto"
	"github.com/spec-kit/carmarket-service/internal/service"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

// ServicesHandler manages the service-ticket endpoints.
type ServicesHandler struct {
	service *service.ServiceTicketService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(ticketService *service.ServiceTicketService) *ServicesHandler {
	return &ServicesHandler{service: ticketService}
}

// Create POST /services/create.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.UserID == "" || req.CarID == "" {
		return apperrors.NewBadRequest("userId and carId are required")
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.CreateTicketInput{
		UserID:        req.UserID,
		CarID:         req.CarID,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ServiceEnvelope{
		Message: "Service created successfully",
		Service: dto.NewServiceResponse(ticket),
	})
}

// Update POST /services/update.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.ServiceID == "" {
		return apperrors.NewBadRequest("serviceId is required")
	}

	thread, err := h.service.UpdateTicket(c.UserContext(), service.UpdateTicketInput{
		TicketID:     req.ServiceID,
		UserID:       req.UserID,
		Details:      req.ServiceDetails,
		Status:       req.Status,
		LaborCharges: req.LaborCharges,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.ServiceEnvelope{
		Message: "Service updated successfully",
		Service: dto.NewServiceThreadResponse(thread),
	})
}

// List POST /services/all.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	var req dto.ListServicesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}

	views, err := h.service.ListTickets(c.UserContext(), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(serviceListEnvelope(views))
}

// ListForCar POST /services/car.
func (h *ServicesHandler) ListForCar(c *fiber.Ctx) error {
	var req dto.CarServicesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.CarID == "" || req.UserID == "" {
		return apperrors.NewBadRequest("carId and userId are required")
	}

	views, err := h.service.ListTicketsForCar(c.UserContext(), req.CarID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(serviceListEnvelope(views))
}

// AddMessage POST /services/message.
func (h *ServicesHandler) AddMessage(c *fiber.Ctx) error {
	var req dto.AddServiceMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.ServiceID == "" || req.UserID == "" {
		return apperrors.NewBadRequest("serviceId and userId are required")
	}

	thread, err := h.service.AddMessage(c.UserContext(), req.ServiceID, req.UserID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(dto.ServiceEnvelope{
		Message: "Message added successfully",
		Service: dto.NewServiceThreadResponse(thread),
	})
}

func serviceListEnvelope(views []service.TicketView) dto.ServiceListEnvelope {
	items := make([]dto.ServiceResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.NewServiceViewResponse(&views[i]))
	}
	return dto.ServiceListEnvelope{Count: len(items), Services: items}
}
