package dto

import (
	"time"

	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/service"
)

// CreateServiceRequest payload.
type CreateServiceRequest struct {
	UserID        string     `json:"userId"`
	CarID         string     `json:"carId"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Notes         string     `json:"notes"`
}

// UpdateServiceRequest payload. Absent fields are left unchanged.
type UpdateServiceRequest struct {
	ServiceID      string                 `json:"serviceId"`
	UserID         string                 `json:"userId"`
	ServiceDetails *domain.ServiceDetails `json:"serviceDetails"`
	Status         *domain.ServiceStatus  `json:"status"`
	LaborCharges   *float64               `json:"laborCharges"`
}

// ListServicesRequest payload.
type ListServicesRequest struct {
	Status *domain.ServiceStatus `json:"status"`
}

// CarServicesRequest payload.
type CarServicesRequest struct {
	CarID  string `json:"carId"`
	UserID string `json:"userId"`
}

// AddServiceMessageRequest payload.
type AddServiceMessageRequest struct {
	ServiceID string `json:"serviceId"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
}

// ServiceUserRef is the resolved requester attached to a listing row.
type ServiceUserRef struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	UserType domain.UserType `json:"userType"`
}

// ServiceCarRef is the resolved vehicle attached to a listing row.
type ServiceCarRef struct {
	ID                 string `json:"id"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Variant            string `json:"variant"`
	RegistrationNumber string `json:"registrationNumber"`
}

// ServiceMessageResponse represents one thread entry.
type ServiceMessageResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceResponse is the full ticket representation.
type ServiceResponse struct {
	ID             string                   `json:"id"`
	UserID         string                   `json:"userId"`
	CarID          string                   `json:"carId"`
	Status         domain.ServiceStatus     `json:"status"`
	ServiceDetails *domain.ServiceDetails   `json:"serviceDetails,omitempty"`
	TotalQuotation float64                  `json:"totalQuotation"`
	LaborCharges   float64                  `json:"laborCharges"`
	FinalAmount    float64                  `json:"finalAmount"`
	ScheduledDate  *time.Time               `json:"scheduledDate,omitempty"`
	CompletionDate *time.Time               `json:"completionDate,omitempty"`
	Notes          string                   `json:"notes,omitempty"`
	User           *ServiceUserRef          `json:"user,omitempty"`
	Car            *ServiceCarRef           `json:"car,omitempty"`
	Messages       []ServiceMessageResponse `json:"messages,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

// ServiceEnvelope wraps single-ticket responses.
type ServiceEnvelope struct {
	Message string          `json:"message"`
	Service ServiceResponse `json:"service"`
}

// ServiceListEnvelope wraps listing responses.
type ServiceListEnvelope struct {
	Count    int               `json:"count"`
	Services []ServiceResponse `json:"services"`
}

// NewServiceResponse maps a bare ticket.
func NewServiceResponse(ticket *domain.ServiceTicket) ServiceResponse {
	return ServiceResponse{
		ID:             ticket.ID,
		UserID:         ticket.UserID,
		CarID:          ticket.CarID,
		Status:         ticket.Status,
		ServiceDetails: ticket.Details,
		TotalQuotation: ticket.TotalQuotation,
		LaborCharges:   ticket.LaborCharges,
		FinalAmount:    ticket.FinalAmount,
		ScheduledDate:  ticket.ScheduledDate,
		CompletionDate: ticket.CompletionDate,
		Notes:          ticket.Notes,
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
	}
}

// NewServiceThreadResponse maps a ticket together with its message history.
func NewServiceThreadResponse(thread *service.TicketThread) ServiceResponse {
	resp := NewServiceResponse(thread.Ticket)
	resp.Messages = make([]ServiceMessageResponse, 0, len(thread.Messages))
	for _, msg := range thread.Messages {
		resp.Messages = append(resp.Messages, ServiceMessageResponse{
			ID:        msg.ID,
			UserID:    msg.UserID,
			Message:   msg.Message,
			Timestamp: msg.Timestamp,
		})
	}
	return resp
}

// NewServiceViewResponse maps a listing row with resolved references.
func NewServiceViewResponse(view *service.TicketView) ServiceResponse {
	resp := NewServiceResponse(&view.Ticket)
	if view.User != nil {
		resp.User = &ServiceUserRef{ID: view.User.ID, Email: view.User.Email, UserType: view.User.UserType}
	}
	if view.Car != nil {
		resp.Car = &ServiceCarRef{
			ID:                 view.Car.ID,
			Make:               view.Car.Make,
			Model:              view.Car.Model,
			Variant:            view.Car.Variant,
			RegistrationNumber: view.Car.RegistrationNumber,
		}
	}
	return resp
}
