package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/repository"
)

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) add(user domain.User) *domain.User {
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[user.ID] = &user
	return &user
}

type stubCarRepo struct {
	cars  map[string]*domain.Car
	order []string
	seq   int
}

func newStubCarRepo() *stubCarRepo {
	return &stubCarRepo{cars: map[string]*domain.Car{}}
}

func (r *stubCarRepo) Create(ctx context.Context, car *domain.Car) error {
	r.seq++
	car.ID = fmt.Sprintf("car-%d", r.seq)
	car.CreatedAt = time.Now()
	car.UpdatedAt = car.CreatedAt
	clone := *car
	r.cars[car.ID] = &clone
	r.order = append(r.order, car.ID)
	return nil
}

func (r *stubCarRepo) Update(ctx context.Context, car *domain.Car) error {
	if _, ok := r.cars[car.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *car
	r.cars[car.ID] = &clone
	return nil
}

func (r *stubCarRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.cars[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.cars, id)
	return nil
}

func (r *stubCarRepo) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	car, ok := r.cars[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *car
	return &clone, nil
}

func (r *stubCarRepo) ExistsByVINOrRegistration(ctx context.Context, vin, registrationNumber string) (bool, error) {
	for _, car := range r.cars {
		if car.VIN == vin || car.RegistrationNumber == registrationNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCarRepo) ListWithFilter(ctx context.Context, filter repository.CarFilter) ([]domain.Car, error) {
	var out []domain.Car
	for i := len(r.order) - 1; i >= 0; i-- {
		car, ok := r.cars[r.order[i]]
		if !ok {
			continue
		}
		if filter.UserID != nil && car.UserID != *filter.UserID {
			continue
		}
		if filter.Make != nil && car.Make != *filter.Make {
			continue
		}
		out = append(out, *car)
	}
	return out, nil
}

func (r *stubCarRepo) add(car domain.Car) *domain.Car {
	r.seq++
	if car.ID == "" {
		car.ID = fmt.Sprintf("car-%d", r.seq)
	}
	r.cars[car.ID] = &car
	r.order = append(r.order, car.ID)
	return &car
}

type stubTicketRepo struct {
	tickets map[string]*domain.ServiceTicket
	order   []string
	seq     int
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: map[string]*domain.ServiceTicket{}}
}

func (r *stubTicketRepo) Create(ctx context.Context, ticket *domain.ServiceTicket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("svc-%d", r.seq)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	r.order = append(r.order, ticket.ID)
	return nil
}

func (r *stubTicketRepo) Update(ctx context.Context, ticket *domain.ServiceTicket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *stubTicketRepo) GetByID(ctx context.Context, id string) (*domain.ServiceTicket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *stubTicketRepo) ListWithFilter(ctx context.Context, filter repository.ServiceTicketFilter) ([]domain.ServiceTicket, error) {
	var out []domain.ServiceTicket
	for i := len(r.order) - 1; i >= 0; i-- {
		ticket := r.tickets[r.order[i]]
		if filter.CarID != nil && ticket.CarID != *filter.CarID {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

type stubMessageRepo struct {
	byTicket map[string][]domain.ServiceMessage
	seq      int
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{byTicket: map[string][]domain.ServiceMessage{}}
}

func (r *stubMessageRepo) Append(ctx context.Context, msg *domain.ServiceMessage) error {
	r.seq++
	msg.ID = fmt.Sprintf("msg-%d", r.seq)
	msg.Timestamp = time.Now()
	r.byTicket[msg.TicketID] = append(r.byTicket[msg.TicketID], *msg)
	return nil
}

func (r *stubMessageRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.ServiceMessage, error) {
	msgs := r.byTicket[ticketID]
	out := make([]domain.ServiceMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

type stubRefreshTokenRepo struct {
	tokens map[string]*domain.RefreshToken
}

func newStubRefreshTokenRepo() *stubRefreshTokenRepo {
	return &stubRefreshTokenRepo{tokens: map[string]*domain.RefreshToken{}}
}

func (r *stubRefreshTokenRepo) Save(ctx context.Context, token *domain.RefreshToken) error {
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *stubRefreshTokenRepo) Get(ctx context.Context, token string) (*domain.RefreshToken, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	clone := *stored
	return &clone, nil
}

func (r *stubRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}
