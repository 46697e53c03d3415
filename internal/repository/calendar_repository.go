package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// CalendarRepository encapsulates derived calendar event persistence.
type CalendarRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	List(ctx context.Context) ([]domain.CalendarEvent, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
}

type calendarRepository struct {
	pool *pgxpool.Pool
}

// NewCalendarRepository instantiates repository.
func NewCalendarRepository(pool *pgxpool.Pool) CalendarRepository {
	return &calendarRepository{pool: pool}
}

const eventColumns = `id, titulo, descripcion, COALESCE(id_equipo, ''), COALESCE(id_area, ''),
    COALESCE(id_tipo, ''), COALESCE(id_mantenimiento, ''), fecha, hora, estado, prioridad, recurrente`

func (r *calendarRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        INSERT INTO calendario (titulo, descripcion, id_equipo, id_area, id_tipo, id_mantenimiento,
            fecha, hora, estado, prioridad, recurrente)
        VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),NULLIF($5,''),NULLIF($6,''),$7,$8,$9,$10,$11)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.EquipmentID,
		event.AreaID,
		event.TypeID,
		event.TicketID,
		event.Date,
		event.Time,
		event.State,
		event.Priority,
		event.Recurring,
	).Scan(&event.ID)
}

func (r *calendarRepository) List(ctx context.Context) ([]domain.CalendarEvent, error) {
	const query = `SELECT ` + eventColumns + ` FROM calendario`
	return r.fetchMany(ctx, query)
}

func (r *calendarRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.CalendarEvent, error) {
	if !validID(ticketID) {
		return nil, nil
	}
	const query = `SELECT ` + eventColumns + ` FROM calendario WHERE id_mantenimiento=$1`
	return r.fetchMany(ctx, query, ticketID)
}

func (r *calendarRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM calendario WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *calendarRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.CalendarEvent, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CalendarEvent
	for rows.Next() {
		var event domain.CalendarEvent
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.EquipmentID,
			&event.AreaID,
			&event.TypeID,
			&event.TicketID,
			&event.Date,
			&event.Time,
			&event.State,
			&event.Priority,
			&event.Recurring,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
