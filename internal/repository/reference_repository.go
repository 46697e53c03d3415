package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// AreaRepository encapsulates hotel area persistence.
type AreaRepository interface {
	Create(ctx context.Context, area *domain.Area) error
	Update(ctx context.Context, area *domain.Area) error
	GetByID(ctx context.Context, id string) (*domain.Area, error)
	List(ctx context.Context) ([]domain.Area, error)
	Delete(ctx context.Context, id string) error
}

// TypeRepository encapsulates equipment type persistence.
type TypeRepository interface {
	Create(ctx context.Context, t *domain.EquipmentType) error
	Update(ctx context.Context, t *domain.EquipmentType) error
	GetByID(ctx context.Context, id string) (*domain.EquipmentType, error)
	List(ctx context.Context) ([]domain.EquipmentType, error)
	Delete(ctx context.Context, id string) error
}

// EquipmentRepository encapsulates equipment catalog persistence.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	Update(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	ListByArea(ctx context.Context, areaID string) ([]domain.Equipment, error)
	Delete(ctx context.Context, id string) error
}

type areaRepository struct {
	pool *pgxpool.Pool
}

// NewAreaRepository instantiates repository.
func NewAreaRepository(pool *pgxpool.Pool) AreaRepository {
	return &areaRepository{pool: pool}
}

func (r *areaRepository) Create(ctx context.Context, area *domain.Area) error {
	const query = `INSERT INTO areas (nombre, descripcion) VALUES ($1,$2) RETURNING id`
	return r.pool.QueryRow(ctx, query, area.Name, area.Description).Scan(&area.ID)
}

func (r *areaRepository) Update(ctx context.Context, area *domain.Area) error {
	if !validID(area.ID) {
		return pgx.ErrNoRows
	}
	return execExpectingRow(ctx, r.pool,
		`UPDATE areas SET nombre=$1, descripcion=$2 WHERE id=$3`,
		area.Name, area.Description, area.ID)
}

func (r *areaRepository) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	var area domain.Area
	err := r.pool.QueryRow(ctx, `SELECT id, nombre, descripcion FROM areas WHERE id=$1`, id).
		Scan(&area.ID, &area.Name, &area.Description)
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *areaRepository) List(ctx context.Context) ([]domain.Area, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre, descripcion FROM areas`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Area
	for rows.Next() {
		var area domain.Area
		if err := rows.Scan(&area.ID, &area.Name, &area.Description); err != nil {
			return nil, err
		}
		result = append(result, area)
	}
	return result, rows.Err()
}

func (r *areaRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	return execExpectingRow(ctx, r.pool, `DELETE FROM areas WHERE id=$1`, id)
}

type typeRepository struct {
	pool *pgxpool.Pool
}

// NewTypeRepository instantiates repository.
func NewTypeRepository(pool *pgxpool.Pool) TypeRepository {
	return &typeRepository{pool: pool}
}

func (r *typeRepository) Create(ctx context.Context, t *domain.EquipmentType) error {
	const query = `INSERT INTO tipos (nombre, descripcion) VALUES ($1,$2) RETURNING id`
	return r.pool.QueryRow(ctx, query, t.Name, t.Description).Scan(&t.ID)
}

func (r *typeRepository) Update(ctx context.Context, t *domain.EquipmentType) error {
	if !validID(t.ID) {
		return pgx.ErrNoRows
	}
	return execExpectingRow(ctx, r.pool,
		`UPDATE tipos SET nombre=$1, descripcion=$2 WHERE id=$3`,
		t.Name, t.Description, t.ID)
}

func (r *typeRepository) GetByID(ctx context.Context, id string) (*domain.EquipmentType, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	var t domain.EquipmentType
	err := r.pool.QueryRow(ctx, `SELECT id, nombre, descripcion FROM tipos WHERE id=$1`, id).
		Scan(&t.ID, &t.Name, &t.Description)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *typeRepository) List(ctx context.Context) ([]domain.EquipmentType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre, descripcion FROM tipos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EquipmentType
	for rows.Next() {
		var t domain.EquipmentType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *typeRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	return execExpectingRow(ctx, r.pool, `DELETE FROM tipos WHERE id=$1`, id)
}

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository instantiates repository.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

const equipmentColumns = `id, nombre, marca, modelo, numero_serie, COALESCE(id_area::text, ''), COALESCE(id_tipo::text, '')`

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	const query = `
        INSERT INTO equipos (nombre, marca, modelo, numero_serie, id_area, id_tipo)
        VALUES ($1,$2,$3,$4,NULLIF($5,'')::uuid,NULLIF($6,'')::uuid)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		eq.Name, eq.Brand, eq.Model, eq.SerialNumber, eq.AreaID, eq.TypeID,
	).Scan(&eq.ID)
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	if !validID(eq.ID) {
		return pgx.ErrNoRows
	}
	return execExpectingRow(ctx, r.pool,
		`UPDATE equipos SET nombre=$1, marca=$2, modelo=$3, numero_serie=$4,
            id_area=NULLIF($5,'')::uuid, id_tipo=NULLIF($6,'')::uuid WHERE id=$7`,
		eq.Name, eq.Brand, eq.Model, eq.SerialNumber, eq.AreaID, eq.TypeID, eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	var eq domain.Equipment
	err := r.pool.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipos WHERE id=$1`, id).
		Scan(&eq.ID, &eq.Name, &eq.Brand, &eq.Model, &eq.SerialNumber, &eq.AreaID, &eq.TypeID)
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	return r.fetchMany(ctx, `SELECT `+equipmentColumns+` FROM equipos`)
}

func (r *equipmentRepository) ListByArea(ctx context.Context, areaID string) ([]domain.Equipment, error) {
	if !validID(areaID) {
		return nil, nil
	}
	return r.fetchMany(ctx, `SELECT `+equipmentColumns+` FROM equipos WHERE id_area=$1`, areaID)
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	return execExpectingRow(ctx, r.pool, `DELETE FROM equipos WHERE id=$1`, id)
}

func (r *equipmentRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Equipment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Brand, &eq.Model, &eq.SerialNumber, &eq.AreaID, &eq.TypeID); err != nil {
			return nil, err
		}
		result = append(result, eq)
	}
	return result, rows.Err()
}

func execExpectingRow(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) error {
	cmd, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
