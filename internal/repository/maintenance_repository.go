package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// MaintenanceRepository encapsulates maintenance ticket persistence.
type MaintenanceRepository interface {
	Create(ctx context.Context, ticket *domain.MaintenanceTicket) error
	Update(ctx context.Context, ticket *domain.MaintenanceTicket) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error)
	List(ctx context.Context) ([]domain.MaintenanceTicket, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]domain.MaintenanceTicket, error)
	Delete(ctx context.Context, id string) error
}

type maintenanceRepository struct {
	pool *pgxpool.Pool
}

// NewMaintenanceRepository instantiates repository.
func NewMaintenanceRepository(pool *pgxpool.Pool) MaintenanceRepository {
	return &maintenanceRepository{pool: pool}
}

const ticketColumns = `id, id_area, id_tipo, id_equipo, descripcion, prioridad, estado,
    fecha_solicitud, fecha_programada, fecha_inicio, fecha_completado,
    trabajo_realizado, observaciones, COALESCE(id_usuario_asignado, ''), id_usuario_solicitante,
    orden_trabajo_generada`

func (r *maintenanceRepository) Create(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	const query = `
        INSERT INTO mantenimientos (id_area, id_tipo, id_equipo, descripcion, prioridad, estado,
            fecha_solicitud, fecha_programada, id_usuario_asignado, id_usuario_solicitante, orden_trabajo_generada)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NULLIF($9,''),$10,$11)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		ticket.AreaID,
		ticket.TypeID,
		ticket.EquipmentID,
		ticket.Description,
		ticket.Priority,
		ticket.State,
		ticket.RequestedAt,
		ticket.ScheduledFor,
		ticket.AssigneeID,
		ticket.RequesterID,
		ticket.WorkOrderGenerated,
	).Scan(&ticket.ID)
}

func (r *maintenanceRepository) Update(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	const query = `
        UPDATE mantenimientos SET id_area=$1, id_tipo=$2, id_equipo=$3, descripcion=$4, prioridad=$5,
            estado=$6, fecha_programada=$7, fecha_inicio=$8, fecha_completado=$9,
            trabajo_realizado=$10, observaciones=$11, id_usuario_asignado=NULLIF($12,''),
            orden_trabajo_generada=$13
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.AreaID,
		ticket.TypeID,
		ticket.EquipmentID,
		ticket.Description,
		ticket.Priority,
		ticket.State,
		ticket.ScheduledFor,
		ticket.StartedAt,
		ticket.CompletedAt,
		ticket.WorkPerformed,
		ticket.Observation,
		ticket.AssigneeID,
		ticket.WorkOrderGenerated,
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

func (r *maintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `SELECT ` + ticketColumns + ` FROM mantenimientos WHERE id=$1`
	var ticket domain.MaintenanceTicket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *maintenanceRepository) List(ctx context.Context) ([]domain.MaintenanceTicket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM mantenimientos`
	return r.fetchMany(ctx, query)
}

func (r *maintenanceRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]domain.MaintenanceTicket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM mantenimientos WHERE id_usuario_asignado=$1`
	return r.fetchMany(ctx, query, assigneeID)
}

func (r *maintenanceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM mantenimientos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *maintenanceRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.MaintenanceTicket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceTicket
	for rows.Next() {
		var ticket domain.MaintenanceTicket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row, ticket *domain.MaintenanceTicket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.AreaID,
		&ticket.TypeID,
		&ticket.EquipmentID,
		&ticket.Description,
		&ticket.Priority,
		&ticket.State,
		&ticket.RequestedAt,
		&ticket.ScheduledFor,
		&ticket.StartedAt,
		&ticket.CompletedAt,
		&ticket.WorkPerformed,
		&ticket.Observation,
		&ticket.AssigneeID,
		&ticket.RequesterID,
		&ticket.WorkOrderGenerated,
	)
}
