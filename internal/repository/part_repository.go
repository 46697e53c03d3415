package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// PartRepository encapsulates spare part persistence.
type PartRepository interface {
	Create(ctx context.Context, part *domain.Part) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Part, error)
	List(ctx context.Context) ([]domain.Part, error)
	Delete(ctx context.Context, id string) error
}

type partRepository struct {
	pool *pgxpool.Pool
}

// NewPartRepository instantiates repository.
func NewPartRepository(pool *pgxpool.Pool) PartRepository {
	return &partRepository{pool: pool}
}

const partColumns = `id, id_mantenimiento, nombre, cantidad, precio_unitario, proveedor`

func (r *partRepository) Create(ctx context.Context, part *domain.Part) error {
	const query = `
        INSERT INTO refacciones (id_mantenimiento, nombre, cantidad, precio_unitario, proveedor)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		part.TicketID, part.Name, part.Quantity, part.UnitPrice, part.Supplier,
	).Scan(&part.ID)
}

func (r *partRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Part, error) {
	if !validID(ticketID) {
		return nil, nil
	}
	const query = `SELECT ` + partColumns + ` FROM refacciones WHERE id_mantenimiento=$1`
	return r.fetchMany(ctx, query, ticketID)
}

func (r *partRepository) List(ctx context.Context) ([]domain.Part, error) {
	const query = `SELECT ` + partColumns + ` FROM refacciones`
	return r.fetchMany(ctx, query)
}

func (r *partRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM refacciones WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Part, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Part
	for rows.Next() {
		var part domain.Part
		if err := rows.Scan(&part.ID, &part.TicketID, &part.Name, &part.Quantity, &part.UnitPrice, &part.Supplier); err != nil {
			return nil, err
		}
		result = append(result, part)
	}
	return result, rows.Err()
}
