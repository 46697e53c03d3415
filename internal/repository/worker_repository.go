package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// WorkerRepository defines read access to provisioned staff identities.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	GetByUsername(ctx context.Context, username string) (*domain.Worker, error)
	// ListActiveByRole returns active workers with the given role in stable
	// enumeration order. The balancer's tie-break depends on that order.
	ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.Worker, error)
	List(ctx context.Context) ([]domain.Worker, error)
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository returns a Postgres-backed implementation.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

const workerColumns = `id, nombre, username, rol, activo, editor, password_hash`

func (r *workerRepository) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `SELECT ` + workerColumns + ` FROM usuarios WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *workerRepository) GetByUsername(ctx context.Context, username string) (*domain.Worker, error) {
	const query = `SELECT ` + workerColumns + ` FROM usuarios WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *workerRepository) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.Worker, error) {
	const query = `SELECT ` + workerColumns + ` FROM usuarios WHERE rol=$1 AND activo=TRUE ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkers(rows)
}

func (r *workerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	const query = `SELECT ` + workerColumns + ` FROM usuarios ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkers(rows)
}

func (r *workerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Worker, error) {
	var worker domain.Worker
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&worker.ID,
		&worker.Name,
		&worker.Username,
		&worker.Role,
		&worker.Active,
		&worker.Editor,
		&worker.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &worker, nil
}

func scanWorkers(rows pgx.Rows) ([]domain.Worker, error) {
	var result []domain.Worker
	for rows.Next() {
		var worker domain.Worker
		if err := rows.Scan(
			&worker.ID,
			&worker.Name,
			&worker.Username,
			&worker.Role,
			&worker.Active,
			&worker.Editor,
			&worker.PasswordHash,
		); err != nil {
			return nil, err
		}
		result = append(result, worker)
	}
	return result, rows.Err()
}
