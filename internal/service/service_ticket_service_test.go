package service

import (
	"context"
	"testing"

	"github.com/spec-kit/carmarket-service/internal/config"
	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/events"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

type ticketFixture struct {
	svc      *ServiceTicketService
	tickets  *stubTicketRepo
	messages *stubMessageRepo
	users    *stubUserRepo
	cars     *stubCarRepo
	events   *[]events.Event
}

func newTicketFixture(t *testing.T, cfg config.ServiceConfig) *ticketFixture {
	t.Helper()
	tickets := newStubTicketRepo()
	messages := newStubMessageRepo()
	users := newStubUserRepo()
	cars := newStubCarRepo()

	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	record := func(ctx context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	}
	dispatcher.Subscribe(events.EventServiceCreated, record)
	dispatcher.Subscribe(events.EventServiceUpdated, record)
	dispatcher.Subscribe(events.EventServiceCompleted, record)
	dispatcher.Subscribe(events.EventServiceMessageAdded, record)

	svc := NewServiceTicketService(cfg, ServiceTicketDependencies{
		TicketRepo:  tickets,
		MessageRepo: messages,
		UserRepo:    users,
		CarRepo:     cars,
		Dispatcher:  dispatcher,
	})
	return &ticketFixture{svc: svc, tickets: tickets, messages: messages, users: users, cars: cars, events: &published}
}

func (f *ticketFixture) seedOwnerAndCar() (*domain.User, *domain.Car) {
	owner := f.users.add(domain.User{Name: "Asha", Email: "asha@example.com", UserType: domain.UserTypeCustomer})
	car := f.cars.add(domain.Car{UserID: owner.ID, Make: "Honda", Model: "City", Variant: "VX", RegistrationNumber: "MH12AB1234", VIN: "VIN123"})
	return owner, car
}

func expectStatusCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != code {
		t.Fatalf("expected error code %s, got %s (%v)", code, domainErr.Code, err)
	}
}

func TestCreateTicketStartsPending(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()

	ticket, err := f.svc.CreateTicket(context.Background(), CreateTicketInput{
		UserID: owner.ID,
		CarID:  car.ID,
		Notes:  "  engine noise on cold start  ",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if ticket.Status != domain.ServiceStatusPending {
		t.Fatalf("expected pending status, got %s", ticket.Status)
	}
	if ticket.Notes != "engine noise on cold start" {
		t.Fatalf("expected trimmed notes, got %q", ticket.Notes)
	}
	if ticket.TotalQuotation != 0 || ticket.FinalAmount != 0 {
		t.Fatalf("expected zero totals on creation, got %v/%v", ticket.TotalQuotation, ticket.FinalAmount)
	}
	if len(*f.events) != 1 || (*f.events)[0].Type != events.EventServiceCreated {
		t.Fatalf("expected one service_created event, got %+v", *f.events)
	}
}

func TestCreateTicketRejectsForeignCar(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	_, car := f.seedOwnerAndCar()
	other := f.users.add(domain.User{Name: "Ravi", Email: "ravi@example.com", UserType: domain.UserTypeCustomer})

	_, err := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: other.ID, CarID: car.ID})
	expectStatusCode(t, err, "FORBIDDEN")
}

func TestCreateTicketUnknownReferences(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()

	if _, err := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: "user-missing", CarID: car.ID}); err == nil {
		t.Fatal("expected error for unknown user")
	} else {
		expectStatusCode(t, err, "NOT_FOUND")
	}
	if _, err := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: "car-missing"}); err == nil {
		t.Fatal("expected error for unknown car")
	} else {
		expectStatusCode(t, err, "NOT_FOUND")
	}
}

func TestUpdateTicketRecomputesTotalsFromDetails(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	ticket, err := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	oil := 500.0
	filter := 100.0
	pads := 200.0
	labor := 200.0
	details := &domain.ServiceDetails{
		EngineOil: &domain.ConsumableItem{Required: true, Price: &oil},
		OilFilter: &domain.PartItem{Required: true, Price: &filter},
		BrakePads: &domain.AxleItem{Required: true, Front: true, Price: &pads},
	}

	thread, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{
		TicketID:     ticket.ID,
		UserID:       owner.ID,
		Details:      details,
		LaborCharges: &labor,
	})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if thread.Ticket.TotalQuotation != 600 {
		t.Fatalf("expected total quotation 600, got %v", thread.Ticket.TotalQuotation)
	}
	if thread.Ticket.FinalAmount != 800 {
		t.Fatalf("expected final amount 800, got %v", thread.Ticket.FinalAmount)
	}
	if thread.Ticket.LaborCharges != 200 {
		t.Fatalf("expected labor charges 200, got %v", thread.Ticket.LaborCharges)
	}
}

func TestUpdateTicketLaborOnlyKeepsQuotation(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	ticket, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	price := 1000.0
	labor := 250.0
	if _, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{
		TicketID: ticket.ID,
		UserID:   owner.ID,
		Details:  &domain.ServiceDetails{Battery: &domain.PartItem{Required: true, Price: &price}},
	}); err != nil {
		t.Fatalf("UpdateTicket details: %v", err)
	}

	thread, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{
		TicketID:     ticket.ID,
		UserID:       owner.ID,
		LaborCharges: &labor,
	})
	if err != nil {
		t.Fatalf("UpdateTicket labor: %v", err)
	}
	if thread.Ticket.TotalQuotation != 1000 {
		t.Fatalf("expected stored quotation 1000, got %v", thread.Ticket.TotalQuotation)
	}
	if thread.Ticket.FinalAmount != 1250 {
		t.Fatalf("expected final amount 1250, got %v", thread.Ticket.FinalAmount)
	}
}

func TestUpdateTicketRejectsUnknownStatus(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	ticket, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	bogus := domain.ServiceStatus("Completed")
	_, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{
		TicketID: ticket.ID,
		UserID:   owner.ID,
		Status:   &bogus,
	})
	expectStatusCode(t, err, "BAD_REQUEST")
}

func TestUpdateTicketCompletionStampsDate(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	ticket, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	completed := domain.ServiceStatusCompleted
	thread, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{
		TicketID: ticket.ID,
		UserID:   owner.ID,
		Status:   &completed,
	})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if thread.Ticket.Status != domain.ServiceStatusCompleted {
		t.Fatalf("expected completed status, got %s", thread.Ticket.Status)
	}
	if thread.Ticket.CompletionDate == nil {
		t.Fatal("expected completion date to be stamped")
	}

	last := (*f.events)[len(*f.events)-1]
	if last.Type != events.EventServiceCompleted {
		t.Fatalf("expected service_completed event, got %s", last.Type)
	}
}

func TestUpdateTicketMissing(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	f.seedOwnerAndCar()

	_, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{TicketID: "svc-missing", UserID: "user-1"})
	expectStatusCode(t, err, "NOT_FOUND")
}

func TestStrictOwnershipGatesUpdates(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{StrictOwnership: true})
	owner, car := f.seedOwnerAndCar()
	stranger := f.users.add(domain.User{Name: "Ravi", Email: "ravi@example.com", UserType: domain.UserTypeCustomer})
	admin := f.users.add(domain.User{Name: "Ops", Email: "ops@example.com", UserType: domain.UserTypeAdmin})
	ticket, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	inspection := domain.ServiceStatusInspection
	_, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{TicketID: ticket.ID, UserID: stranger.ID, Status: &inspection})
	expectStatusCode(t, err, "FORBIDDEN")

	if _, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{TicketID: ticket.ID, UserID: admin.ID, Status: &inspection}); err != nil {
		t.Fatalf("expected admin update to pass, got %v", err)
	}
	if _, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{TicketID: ticket.ID, UserID: owner.ID, Status: &inspection}); err != nil {
		t.Fatalf("expected owner update to pass, got %v", err)
	}
}

func TestAddMessageAppendsInOrder(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	ticket, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	if _, err := f.svc.AddMessage(context.Background(), ticket.ID, owner.ID, "when can I drop the car off?"); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	thread, err := f.svc.AddMessage(context.Background(), ticket.ID, owner.ID, "any slot on Saturday works")
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	if len(thread.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(thread.Messages))
	}
	if thread.Messages[0].Message != "when can I drop the car off?" {
		t.Fatalf("unexpected first message %q", thread.Messages[0].Message)
	}
	if thread.Messages[1].Message != "any slot on Saturday works" {
		t.Fatalf("unexpected second message %q", thread.Messages[1].Message)
	}
}

func TestAddMessageValidation(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	ticket, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	_, err := f.svc.AddMessage(context.Background(), ticket.ID, owner.ID, "   ")
	expectStatusCode(t, err, "BAD_REQUEST")

	_, err = f.svc.AddMessage(context.Background(), "svc-missing", owner.ID, "hello")
	expectStatusCode(t, err, "NOT_FOUND")
}

func TestListTicketsFiltersByStatus(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	first, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})
	second, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	inspection := domain.ServiceStatusInspection
	if _, err := f.svc.UpdateTicket(context.Background(), UpdateTicketInput{TicketID: second.ID, UserID: owner.ID, Status: &inspection}); err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}

	views, err := f.svc.ListTickets(context.Background(), &inspection)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(views) != 1 || views[0].Ticket.ID != second.ID {
		t.Fatalf("expected only the inspection ticket, got %+v", views)
	}
	if views[0].User == nil || views[0].User.Email != "asha@example.com" {
		t.Fatalf("expected resolved user reference, got %+v", views[0].User)
	}
	if views[0].Car == nil || views[0].Car.RegistrationNumber != "MH12AB1234" {
		t.Fatalf("expected resolved car reference, got %+v", views[0].Car)
	}

	all, err := f.svc.ListTickets(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(all))
	}
	if all[0].Ticket.ID != second.ID || all[1].Ticket.ID != first.ID {
		t.Fatalf("expected newest-first ordering, got %s then %s", all[0].Ticket.ID, all[1].Ticket.ID)
	}

	bogus := domain.ServiceStatus("archived")
	_, err = f.svc.ListTickets(context.Background(), &bogus)
	expectStatusCode(t, err, "BAD_REQUEST")
}

func TestListTicketsForCarRequiresOwner(t *testing.T) {
	f := newTicketFixture(t, config.ServiceConfig{})
	owner, car := f.seedOwnerAndCar()
	stranger := f.users.add(domain.User{Name: "Ravi", Email: "ravi@example.com", UserType: domain.UserTypeCustomer})
	ticket, _ := f.svc.CreateTicket(context.Background(), CreateTicketInput{UserID: owner.ID, CarID: car.ID})

	_, err := f.svc.ListTicketsForCar(context.Background(), car.ID, stranger.ID)
	expectStatusCode(t, err, "FORBIDDEN")

	views, err := f.svc.ListTicketsForCar(context.Background(), car.ID, owner.ID)
	if err != nil {
		t.Fatalf("ListTicketsForCar: %v", err)
	}
	if len(views) != 1 || views[0].Ticket.ID != ticket.ID {
		t.Fatalf("expected the car's ticket, got %+v", views)
	}

	_, err = f.svc.ListTicketsForCar(context.Background(), "car-missing", owner.ID)
	expectStatusCode(t, err, "NOT_FOUND")
}
