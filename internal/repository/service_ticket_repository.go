package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carmarket-service/internal/domain"
)

// ServiceTicketFilter narrows ticket listings.
type ServiceTicketFilter struct {
	CarID  *string
	Status *domain.ServiceStatus
}

// ServiceTicketRepository encapsulates service ticket persistence.
type ServiceTicketRepository interface {
	Create(ctx context.Context, ticket *domain.ServiceTicket) error
	Update(ctx context.Context, ticket *domain.ServiceTicket) error
	GetByID(ctx context.Context, id string) (*domain.ServiceTicket, error)
	ListWithFilter(ctx context.Context, filter ServiceTicketFilter) ([]domain.ServiceTicket, error)
}

type serviceTicketRepository struct {
	pool *pgxpool.Pool
}

// NewServiceTicketRepository instantiates repository.
func NewServiceTicketRepository(pool *pgxpool.Pool) ServiceTicketRepository {
	return &serviceTicketRepository{pool: pool}
}

const ticketColumns = `id, user_id, car_id, status, details, total_quotation, labor_charges,
               final_amount, scheduled_date, completion_date, notes, created_at, updated_at`

func (r *serviceTicketRepository) Create(ctx context.Context, ticket *domain.ServiceTicket) error {
	const query = `
        INSERT INTO service_tickets (user_id, car_id, status, details, total_quotation,
            labor_charges, final_amount, scheduled_date, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.UserID,
		ticket.CarID,
		ticket.Status,
		ticket.Details,
		ticket.TotalQuotation,
		ticket.LaborCharges,
		ticket.FinalAmount,
		ticket.ScheduledDate,
		ticket.Notes,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

// Update writes the full ticket row. Concurrent updates are last-write-wins;
// a single row write is the only atomicity relied upon.
func (r *serviceTicketRepository) Update(ctx context.Context, ticket *domain.ServiceTicket) error {
	const query = `
        UPDATE service_tickets SET status=$1, details=$2, total_quotation=$3, labor_charges=$4,
            final_amount=$5, scheduled_date=$6, completion_date=$7, notes=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.Details,
		ticket.TotalQuotation,
		ticket.LaborCharges,
		ticket.FinalAmount,
		ticket.ScheduledDate,
		ticket.CompletionDate,
		ticket.Notes,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceTicketRepository) GetByID(ctx context.Context, id string) (*domain.ServiceTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM service_tickets WHERE id=$1`, ticketColumns)
	var ticket domain.ServiceTicket
	if err := r.pool.QueryRow(ctx, query, id).Scan(ticketScanTargets(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *serviceTicketRepository) ListWithFilter(ctx context.Context, filter ServiceTicketFilter) ([]domain.ServiceTicket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CarID != nil {
		args = append(args, *filter.CarID)
		clauses = append(clauses, fmt.Sprintf("car_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM service_tickets WHERE %s ORDER BY created_at DESC`,
		ticketColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceTicket
	for rows.Next() {
		var ticket domain.ServiceTicket
		if err := rows.Scan(ticketScanTargets(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func ticketScanTargets(ticket *domain.ServiceTicket) []any {
	return []any{
		&ticket.ID,
		&ticket.UserID,
		&ticket.CarID,
		&ticket.Status,
		&ticket.Details,
		&ticket.TotalQuotation,
		&ticket.LaborCharges,
		&ticket.FinalAmount,
		&ticket.ScheduledDate,
		&ticket.CompletionDate,
		&ticket.Notes,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	}
}
