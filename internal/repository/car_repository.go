package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carmarket-service/internal/domain"
)

// CarFilter captures marketplace search parameters.
type CarFilter struct {
	UserID       *string
	Make         *string
	Model        *string
	FuelType     *domain.FuelType
	Transmission *domain.Transmission
	City         *string
	State        *string
	MinPrice     *float64
	MaxPrice     *float64
	MinYear      *int
	MaxYear      *int
}

// CarRepository encapsulates car listing persistence.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	ExistsByVINOrRegistration(ctx context.Context, vin, registrationNumber string) (bool, error)
	ListWithFilter(ctx context.Context, filter CarFilter) ([]domain.Car, error)
}

type carRepository struct {
	pool *pgxpool.Pool
}

// NewCarRepository instantiates repository.
func NewCarRepository(pool *pgxpool.Pool) CarRepository {
	return &carRepository{pool: pool}
}

const carColumns = `id, user_id, make, model, variant, year_of_manufacture, registration_year,
               registration_number, color, fuel_type, transmission, engine_displacement,
               kilometers, vin, ownership, insurance_valid, rto_location, features, price,
               available, condition, description, location, created_at, updated_at`

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	const query = `
        INSERT INTO cars (user_id, make, model, variant, year_of_manufacture, registration_year,
            registration_number, color, fuel_type, transmission, engine_displacement, kilometers,
            vin, ownership, insurance_valid, rto_location, features, price, available, condition,
            description, location)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		car.UserID,
		car.Make,
		car.Model,
		car.Variant,
		car.YearOfManufacture,
		car.RegistrationYear,
		car.RegistrationNumber,
		car.Color,
		car.FuelType,
		car.Transmission,
		car.EngineDisplacement,
		car.Kilometers,
		car.VIN,
		car.Ownership,
		car.InsuranceValid,
		car.RTOLocation,
		car.Features,
		car.Price,
		car.Available,
		car.Condition,
		car.Description,
		car.Location,
	).Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt)
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	const query = `
        UPDATE cars SET make=$1, model=$2, variant=$3, year_of_manufacture=$4, registration_year=$5,
            color=$6, fuel_type=$7, transmission=$8, engine_displacement=$9, kilometers=$10,
            ownership=$11, insurance_valid=$12, rto_location=$13, features=$14, price=$15,
            available=$16, condition=$17, description=$18, location=$19, updated_at=NOW()
        WHERE id=$20`
	cmd, err := r.pool.Exec(ctx, query,
		car.Make,
		car.Model,
		car.Variant,
		car.YearOfManufacture,
		car.RegistrationYear,
		car.Color,
		car.FuelType,
		car.Transmission,
		car.EngineDisplacement,
		car.Kilometers,
		car.Ownership,
		car.InsuranceValid,
		car.RTOLocation,
		car.Features,
		car.Price,
		car.Available,
		car.Condition,
		car.Description,
		car.Location,
		car.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE id=$1`, carColumns)
	var car domain.Car
	if err := r.pool.QueryRow(ctx, query, id).Scan(carScanTargets(&car)...); err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) ExistsByVINOrRegistration(ctx context.Context, vin, registrationNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM cars WHERE vin=$1 OR registration_number=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, vin, registrationNumber).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *carRepository) ListWithFilter(ctx context.Context, filter CarFilter) ([]domain.Car, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Make != nil {
		args = append(args, *filter.Make)
		clauses = append(clauses, fmt.Sprintf("make=$%d", len(args)))
	}
	if filter.Model != nil {
		args = append(args, *filter.Model)
		clauses = append(clauses, fmt.Sprintf("model=$%d", len(args)))
	}
	if filter.FuelType != nil {
		args = append(args, *filter.FuelType)
		clauses = append(clauses, fmt.Sprintf("fuel_type=$%d", len(args)))
	}
	if filter.Transmission != nil {
		args = append(args, *filter.Transmission)
		clauses = append(clauses, fmt.Sprintf("transmission=$%d", len(args)))
	}
	if filter.City != nil {
		args = append(args, *filter.City)
		clauses = append(clauses, fmt.Sprintf("location->>'city'=$%d", len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		clauses = append(clauses, fmt.Sprintf("location->>'state'=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.MinYear != nil {
		args = append(args, *filter.MinYear)
		clauses = append(clauses, fmt.Sprintf("year_of_manufacture >= $%d", len(args)))
	}
	if filter.MaxYear != nil {
		args = append(args, *filter.MaxYear)
		clauses = append(clauses, fmt.Sprintf("year_of_manufacture <= $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM cars WHERE %s ORDER BY created_at DESC`,
		carColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(carScanTargets(&car)...); err != nil {
			return nil, err
		}
		result = append(result, car)
	}
	return result, rows.Err()
}

func carScanTargets(car *domain.Car) []any {
	return []any{
		&car.ID,
		&car.UserID,
		&car.Make,
		&car.Model,
		&car.Variant,
		&car.YearOfManufacture,
		&car.RegistrationYear,
		&car.RegistrationNumber,
		&car.Color,
		&car.FuelType,
		&car.Transmission,
		&car.EngineDisplacement,
		&car.Kilometers,
		&car.VIN,
		&car.Ownership,
		&car.InsuranceValid,
		&car.RTOLocation,
		&car.Features,
		&car.Price,
		&car.Available,
		&car.Condition,
		&car.Description,
		&car.Location,
		&car.CreatedAt,
		&car.UpdatedAt,
	}
}
