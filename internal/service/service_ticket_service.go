package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carmarket-service/internal/config"
	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/events"
	"github.com/spec-kit/carmarket-service/internal/quotation"
	"github.com/spec-kit/carmarket-service/internal/repository"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

// ServiceTicketService is the single entry point mutating service tickets:
// it enforces authorization, applies status transitions, recomputes totals
// and appends thread messages.
type ServiceTicketService struct {
	tickets  repository.ServiceTicketRepository
	messages repository.ServiceMessageRepository
	users    repository.UserRepository
	cars     repository.CarRepository

	dispatcher events.Dispatcher
	cfg        config.ServiceConfig
}

// ServiceTicketDependencies bundles collaborators for the ticket service.
type ServiceTicketDependencies struct {
	TicketRepo  repository.ServiceTicketRepository
	MessageRepo repository.ServiceMessageRepository
	UserRepo    repository.UserRepository
	CarRepo     repository.CarRepository
	Dispatcher  events.Dispatcher
}

// CreateTicketInput describes ticket creation payload.
type CreateTicketInput struct {
	UserID        string
	CarID         string
	ScheduledDate *time.Time
	Notes         string
}

// UpdateTicketInput carries partial-update fields; nil fields are left
// unchanged except for the derived totals.
type UpdateTicketInput struct {
	TicketID     string
	UserID       string
	Details      *domain.ServiceDetails
	Status       *domain.ServiceStatus
	LaborCharges *float64
}

// UserRef is the resolved owner reference attached to listings.
type UserRef struct {
	ID       string
	Email    string
	UserType domain.UserType
}

// CarRef is the resolved car reference attached to listings.
type CarRef struct {
	ID                 string
	Make               string
	Model              string
	Variant            string
	RegistrationNumber string
}

// TicketView is a ticket with its references resolved for display.
type TicketView struct {
	Ticket domain.ServiceTicket
	User   *UserRef
	Car    *CarRef
}

// TicketThread is a ticket with its full message history.
type TicketThread struct {
	Ticket   *domain.ServiceTicket
	Messages []domain.ServiceMessage
}

// NewServiceTicketService constructs the service.
func NewServiceTicketService(cfg config.ServiceConfig, deps ServiceTicketDependencies) *ServiceTicketService {
	return &ServiceTicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		cars:       deps.CarRepo,
		dispatcher: deps.Dispatcher,
		cfg:        cfg,
	}
}

// CreateTicket opens a service request for a car owned by the caller.
func (s *ServiceTicketService) CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.ServiceTicket, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}
	car, err := s.cars.GetByID(ctx, input.CarID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Car")
		}
		return nil, err
	}
	if car.UserID != input.UserID {
		return nil, apperrors.NewForbidden("not authorized to create service for this car")
	}

	ticket := &domain.ServiceTicket{
		UserID:        input.UserID,
		CarID:         input.CarID,
		Status:        domain.ServiceStatusPending,
		ScheduledDate: input.ScheduledDate,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventServiceCreated,
		TicketID: ticket.ID,
		UserID:   input.UserID,
		Payload: events.ServiceCreatedPayload{
			CarID:         ticket.CarID,
			ScheduledDate: ticket.ScheduledDate,
		},
	})
	return ticket, nil
}

// UpdateTicket applies the supplied fields to a ticket. Totals are
// recomputed whenever details are supplied; a labor-only update recomputes
// the final amount from the stored quotation. Setting status to completed
// stamps the completion date in the same update.
func (s *ServiceTicketService) UpdateTicket(ctx context.Context, input UpdateTicketInput) (*TicketThread, error) {
	ticket, err := s.tickets.GetByID(ctx, input.TicketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Service")
		}
		return nil, err
	}
	if err := s.checkTicketAccess(ctx, ticket, input.UserID); err != nil {
		return nil, err
	}
	if input.Status != nil && !domain.ValidServiceStatus(*input.Status) {
		return nil, apperrors.NewBadRequest("invalid status value")
	}

	oldStatus := ticket.Status

	if input.Details != nil {
		labor := ticket.LaborCharges
		if input.LaborCharges != nil {
			labor = *input.LaborCharges
		}
		ticket.Details = input.Details
		ticket.TotalQuotation, ticket.FinalAmount = quotation.ComputeTotals(input.Details, labor)
	} else if input.LaborCharges != nil {
		ticket.FinalAmount = quotation.FinalAmount(ticket.TotalQuotation, *input.LaborCharges)
	}
	if input.LaborCharges != nil {
		ticket.LaborCharges = *input.LaborCharges
	}
	if input.Status != nil {
		ticket.Status = *input.Status
		if *input.Status == domain.ServiceStatusCompleted {
			now := time.Now()
			ticket.CompletionDate = &now
		}
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	eventType := events.EventServiceUpdated
	if ticket.Status == domain.ServiceStatusCompleted && oldStatus != domain.ServiceStatusCompleted {
		eventType = events.EventServiceCompleted
	}
	s.publishEvent(ctx, events.Event{
		Type:     eventType,
		TicketID: ticket.ID,
		UserID:   input.UserID,
		Payload: events.ServiceUpdatedPayload{
			OldStatus:      oldStatus,
			NewStatus:      ticket.Status,
			TotalQuotation: ticket.TotalQuotation,
			FinalAmount:    ticket.FinalAmount,
		},
	})

	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	return &TicketThread{Ticket: ticket, Messages: msgs}, nil
}

// ListTickets returns all tickets, optionally filtered by status, newest
// first, with owner and car references resolved for display.
func (s *ServiceTicketService) ListTickets(ctx context.Context, status *domain.ServiceStatus) ([]TicketView, error) {
	if status != nil && !domain.ValidServiceStatus(*status) {
		return nil, apperrors.NewBadRequest("invalid status value")
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.ServiceTicketFilter{Status: status})
	if err != nil {
		return nil, err
	}
	return s.resolveReferences(ctx, tickets)
}

// ListTicketsForCar returns a car's tickets to its owner.
func (s *ServiceTicketService) ListTicketsForCar(ctx context.Context, carID, userID string) ([]TicketView, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Car")
		}
		return nil, err
	}
	if car.UserID != userID {
		return nil, apperrors.NewForbidden("not authorized to view services for this car")
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.ServiceTicketFilter{CarID: &carID})
	if err != nil {
		return nil, err
	}
	return s.resolveReferences(ctx, tickets)
}

// AddMessage appends an entry to a ticket's conversation thread.
func (s *ServiceTicketService) AddMessage(ctx context.Context, ticketID, userID, message string) (*TicketThread, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewBadRequest("Message is required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Service")
		}
		return nil, err
	}
	if err := s.checkTicketAccess(ctx, ticket, userID); err != nil {
		return nil, err
	}

	msg := &domain.ServiceMessage{
		TicketID: ticket.ID,
		UserID:   userID,
		Message:  message,
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventServiceMessageAdded,
		TicketID: ticket.ID,
		UserID:   userID,
		Payload: events.ServiceMessageAddedPayload{
			MessageID:   msg.ID,
			BodyPreview: stringPreview(msg.Message, 120),
		},
	})

	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	return &TicketThread{Ticket: ticket, Messages: msgs}, nil
}

// checkTicketAccess applies the strict-ownership policy when enabled.
// Historically update and message-append only required the ticket to exist;
// that stays the default.
func (s *ServiceTicketService) checkTicketAccess(ctx context.Context, ticket *domain.ServiceTicket, userID string) error {
	if !s.cfg.StrictOwnership || ticket.UserID == userID {
		return nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewForbidden("not authorized for this service")
		}
		return err
	}
	if user.UserType != domain.UserTypeAdmin {
		return apperrors.NewForbidden("not authorized for this service")
	}
	return nil
}

func (s *ServiceTicketService) resolveReferences(ctx context.Context, tickets []domain.ServiceTicket) ([]TicketView, error) {
	views := make([]TicketView, 0, len(tickets))
	userRefs := map[string]*UserRef{}
	carRefs := map[string]*CarRef{}

	for i := range tickets {
		view := TicketView{Ticket: tickets[i]}

		if ref, seen := userRefs[tickets[i].UserID]; seen {
			view.User = ref
		} else {
			user, err := s.users.GetByID(ctx, tickets[i].UserID)
			if err != nil && err != pgx.ErrNoRows {
				return nil, err
			}
			if user != nil {
				view.User = &UserRef{ID: user.ID, Email: user.Email, UserType: user.UserType}
			}
			userRefs[tickets[i].UserID] = view.User
		}

		if ref, seen := carRefs[tickets[i].CarID]; seen {
			view.Car = ref
		} else {
			car, err := s.cars.GetByID(ctx, tickets[i].CarID)
			if err != nil && err != pgx.ErrNoRows {
				return nil, err
			}
			if car != nil {
				view.Car = &CarRef{
					ID:                 car.ID,
					Make:               car.Make,
					Model:              car.Model,
					Variant:            car.Variant,
					RegistrationNumber: car.RegistrationNumber,
				}
			}
			carRefs[tickets[i].CarID] = view.Car
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *ServiceTicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
