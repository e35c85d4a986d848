package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carmarket-service/internal/domain"
)

// ServiceMessageRepository manages ticket conversation threads. Each append
// is a single-row insert, so concurrent appends never overwrite each other.
type ServiceMessageRepository interface {
	Append(ctx context.Context, msg *domain.ServiceMessage) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ServiceMessage, error)
}

type serviceMessageRepository struct {
	pool *pgxpool.Pool
}

// NewServiceMessageRepository builds repository.
func NewServiceMessageRepository(pool *pgxpool.Pool) ServiceMessageRepository {
	return &serviceMessageRepository{pool: pool}
}

func (r *serviceMessageRepository) Append(ctx context.Context, msg *domain.ServiceMessage) error {
	const query = `
        INSERT INTO service_messages (ticket_id, user_id, message)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.TicketID,
		msg.UserID,
		msg.Message,
	).Scan(&msg.ID, &msg.Timestamp)
}

func (r *serviceMessageRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ServiceMessage, error) {
	const query = `
        SELECT id, ticket_id, user_id, message, created_at
        FROM service_messages WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceMessage
	for rows.Next() {
		var msg domain.ServiceMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.UserID,
			&msg.Message,
			&msg.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
