package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// IncidentRepository encapsulates incident persistence. The store offers no
// transactions, so the claim/assign primitives are single conditional updates
// that either take effect atomically or report that they did not.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id string) (*domain.Incident, error)
	List(ctx context.Context) ([]domain.Incident, error)
	ListByReporter(ctx context.Context, reporterID string) ([]domain.Incident, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]domain.Incident, error)
	// Claim sets the assignee and moves the incident to in_progress, but only
	// while it is still pending and unassigned. Returns false when another
	// actor got there first.
	Claim(ctx context.Context, id, workerID, workerName string, startedAt time.Time) (bool, error)
	// Assign sets the assignee without touching state, guarded by the same
	// pending-and-unassigned condition as Claim.
	Assign(ctx context.Context, id, workerID, workerName string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository instantiates repository.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

const incidentColumns = `id, area, ubicacion, es_habitacion, numero_habitacion, piso, descripcion,
    prioridad, estado, id_ama_llaves, nombre_ama_llaves,
    COALESCE(id_mantenimiento_asignado, ''), COALESCE(nombre_mantenimiento_asignado, ''),
    fecha_reporte, fecha_inicio, fecha_completado, observaciones_ama, trabajo_realizado`

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	// Absent assignment is stored as NULL, never as an empty marker value.
	const query = `
        INSERT INTO incidentes (area, ubicacion, es_habitacion, numero_habitacion, piso, descripcion,
            prioridad, estado, id_ama_llaves, nombre_ama_llaves,
            id_mantenimiento_asignado, nombre_mantenimiento_asignado, fecha_reporte)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NULLIF($11,''),NULLIF($12,''),$13)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		incident.Area,
		incident.Location,
		incident.IsRoom,
		incident.RoomNumber,
		incident.Floor,
		incident.Description,
		incident.Priority,
		incident.State,
		incident.ReporterID,
		incident.ReporterName,
		incident.AssigneeID,
		incident.AssigneeName,
		incident.ReportedAt,
	).Scan(&incident.ID)
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	const query = `
        UPDATE incidentes SET area=$1, ubicacion=$2, es_habitacion=$3, numero_habitacion=$4, piso=$5,
            descripcion=$6, prioridad=$7, estado=$8,
            id_mantenimiento_asignado=NULLIF($9,''), nombre_mantenimiento_asignado=NULLIF($10,''),
            fecha_inicio=$11, fecha_completado=$12, observaciones_ama=$13, trabajo_realizado=$14
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		incident.Area,
		incident.Location,
		incident.IsRoom,
		incident.RoomNumber,
		incident.Floor,
		incident.Description,
		incident.Priority,
		incident.State,
		incident.AssigneeID,
		incident.AssigneeName,
		incident.StartedAt,
		incident.CompletedAt,
		incident.Observation,
		incident.WorkPerformed,
		incident.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id string) (*domain.Incident, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `SELECT ` + incidentColumns + ` FROM incidentes WHERE id=$1`
	var incident domain.Incident
	if err := scanIncident(r.pool.QueryRow(ctx, query, id), &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) List(ctx context.Context) ([]domain.Incident, error) {
	const query = `SELECT ` + incidentColumns + ` FROM incidentes`
	return r.fetchMany(ctx, query)
}

func (r *incidentRepository) ListByReporter(ctx context.Context, reporterID string) ([]domain.Incident, error) {
	const query = `SELECT ` + incidentColumns + ` FROM incidentes WHERE id_ama_llaves=$1`
	return r.fetchMany(ctx, query, reporterID)
}

func (r *incidentRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]domain.Incident, error) {
	const query = `SELECT ` + incidentColumns + ` FROM incidentes WHERE id_mantenimiento_asignado=$1`
	return r.fetchMany(ctx, query, assigneeID)
}

func (r *incidentRepository) Claim(ctx context.Context, id, workerID, workerName string, startedAt time.Time) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	const query = `
        UPDATE incidentes SET estado=$1, id_mantenimiento_asignado=$2, nombre_mantenimiento_asignado=$3, fecha_inicio=$4
        WHERE id=$5 AND estado=$6 AND COALESCE(id_mantenimiento_asignado, '')=''`
	cmd, err := r.pool.Exec(ctx, query,
		domain.IncidentStateInProgress, workerID, workerName, startedAt,
		id, domain.IncidentStatePending,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *incidentRepository) Assign(ctx context.Context, id, workerID, workerName string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	const query = `
        UPDATE incidentes SET id_mantenimiento_asignado=$1, nombre_mantenimiento_asignado=$2
        WHERE id=$3 AND estado=$4 AND COALESCE(id_mantenimiento_asignado, '')=''`
	cmd, err := r.pool.Exec(ctx, query, workerID, workerName, id, domain.IncidentStatePending)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *incidentRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM incidentes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incidentRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Incident, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Incident
	for rows.Next() {
		var incident domain.Incident
		if err := scanIncident(rows, &incident); err != nil {
			return nil, err
		}
		result = append(result, incident)
	}
	return result, rows.Err()
}

func scanIncident(row pgx.Row, incident *domain.Incident) error {
	return row.Scan(
		&incident.ID,
		&incident.Area,
		&incident.Location,
		&incident.IsRoom,
		&incident.RoomNumber,
		&incident.Floor,
		&incident.Description,
		&incident.Priority,
		&incident.State,
		&incident.ReporterID,
		&incident.ReporterName,
		&incident.AssigneeID,
		&incident.AssigneeName,
		&incident.ReportedAt,
		&incident.StartedAt,
		&incident.CompletedAt,
		&incident.Observation,
		&incident.WorkPerformed,
	)
}
