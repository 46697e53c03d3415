package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// ReferenceService manages the areas, equipment types and equipment catalog.
// List reads go through a Redis cache; every write invalidates the affected
// key so readers never see a stale catalog for longer than one write.
type ReferenceService struct {
	areas     repository.AreaRepository
	types     repository.TypeRepository
	equipment repository.EquipmentRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// ReferenceDependencies bundles repositories and the cache client.
type ReferenceDependencies struct {
	AreaRepo      repository.AreaRepository
	TypeRepo      repository.TypeRepository
	EquipmentRepo repository.EquipmentRepository
	Cache         *redis.Client
	CacheTTL      time.Duration
	Logger        *zap.Logger
}

// NewReferenceService creates the service.
func NewReferenceService(deps ReferenceDependencies) *ReferenceService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReferenceService{
		areas:     deps.AreaRepo,
		types:     deps.TypeRepo,
		equipment: deps.EquipmentRepo,
		cache:     deps.Cache,
		cacheTTL:  ttl,
		logger:    logger,
	}
}

const (
	cacheKeyAreas     = "ref:areas"
	cacheKeyTypes     = "ref:types"
	cacheKeyEquipment = "ref:equipment"
)

// ListAreas returns every area, cached.
func (s *ReferenceService) ListAreas(ctx context.Context) ([]domain.Area, error) {
	var areas []domain.Area
	if s.cacheGet(ctx, cacheKeyAreas, &areas) {
		return areas, nil
	}
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, cacheKeyAreas, areas)
	return areas, nil
}

// ListTypes returns every equipment type, cached.
func (s *ReferenceService) ListTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	var types []domain.EquipmentType
	if s.cacheGet(ctx, cacheKeyTypes, &types) {
		return types, nil
	}
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, cacheKeyTypes, types)
	return types, nil
}

// ListEquipment returns the full equipment catalog, cached.
func (s *ReferenceService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	var equipment []domain.Equipment
	if s.cacheGet(ctx, cacheKeyEquipment, &equipment) {
		return equipment, nil
	}
	equipment, err := s.equipment.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, cacheKeyEquipment, equipment)
	return equipment, nil
}

// ListEquipmentByArea returns equipment in a single area, uncached.
func (s *ReferenceService) ListEquipmentByArea(ctx context.Context, areaID string) ([]domain.Equipment, error) {
	equipment, err := s.equipment.ListByArea(ctx, areaID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return equipment, nil
}

// CreateArea adds an area to the catalog. Admin only.
func (s *ReferenceService) CreateArea(ctx context.Context, actor *domain.Worker, area *domain.Area) (*domain.Area, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(area.Name) == "" {
		return nil, apperrors.NewValidationError("area name is required", nil)
	}
	if err := s.areas.Create(ctx, area); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyAreas)
	return area, nil
}

// UpdateArea renames or re-describes an area. Admin only.
func (s *ReferenceService) UpdateArea(ctx context.Context, actor *domain.Worker, area *domain.Area) (*domain.Area, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(area.Name) == "" {
		return nil, apperrors.NewValidationError("area name is required", nil)
	}
	if err := s.areas.Update(ctx, area); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("area", map[string]any{"area_id": area.ID})
		}
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyAreas)
	return area, nil
}

// DeleteArea removes an area unless equipment still references it. Admin only.
func (s *ReferenceService) DeleteArea(ctx context.Context, actor *domain.Worker, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	inArea, err := s.equipment.ListByArea(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(inArea) > 0 {
		return apperrors.NewReferentialError("area still has equipment", map[string]any{
			"area_id":         id,
			"equipment_count": len(inArea),
		})
	}
	if err := s.areas.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("area", map[string]any{"area_id": id})
		}
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyAreas)
	return nil
}

// CreateType adds an equipment type. Admin only.
func (s *ReferenceService) CreateType(ctx context.Context, actor *domain.Worker, t *domain.EquipmentType) (*domain.EquipmentType, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(t.Name) == "" {
		return nil, apperrors.NewValidationError("type name is required", nil)
	}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyTypes)
	return t, nil
}

// UpdateType edits an equipment type. Admin only.
func (s *ReferenceService) UpdateType(ctx context.Context, actor *domain.Worker, t *domain.EquipmentType) (*domain.EquipmentType, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(t.Name) == "" {
		return nil, apperrors.NewValidationError("type name is required", nil)
	}
	if err := s.types.Update(ctx, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("type", map[string]any{"type_id": t.ID})
		}
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyTypes)
	return t, nil
}

// DeleteType removes an equipment type. Admin only.
func (s *ReferenceService) DeleteType(ctx context.Context, actor *domain.Worker, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.types.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("type", map[string]any{"type_id": id})
		}
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyTypes)
	return nil
}

// CreateEquipment adds a catalog entry; its area and type must exist. Admin
// only.
func (s *ReferenceService) CreateEquipment(ctx context.Context, actor *domain.Worker, eq *domain.Equipment) (*domain.Equipment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(eq.Name) == "" {
		return nil, apperrors.NewValidationError("equipment name is required", nil)
	}
	if err := s.checkEquipmentRefs(ctx, eq); err != nil {
		return nil, err
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyEquipment)
	return eq, nil
}

// UpdateEquipment edits a catalog entry. Admin only.
func (s *ReferenceService) UpdateEquipment(ctx context.Context, actor *domain.Worker, eq *domain.Equipment) (*domain.Equipment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(eq.Name) == "" {
		return nil, apperrors.NewValidationError("equipment name is required", nil)
	}
	if err := s.checkEquipmentRefs(ctx, eq); err != nil {
		return nil, err
	}
	if err := s.equipment.Update(ctx, eq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": eq.ID})
		}
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyEquipment)
	return eq, nil
}

// DeleteEquipment removes a catalog entry. Admin only.
func (s *ReferenceService) DeleteEquipment(ctx context.Context, actor *domain.Worker, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.equipment.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("equipment", map[string]any{"equipment_id": id})
		}
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, cacheKeyEquipment)
	return nil
}

func (s *ReferenceService) checkEquipmentRefs(ctx context.Context, eq *domain.Equipment) error {
	if eq.AreaID != "" {
		if _, err := s.areas.GetByID(ctx, eq.AreaID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewReferentialError("area does not exist", map[string]any{"area_id": eq.AreaID})
			}
			return apperrors.MapError(err)
		}
	}
	if eq.TypeID != "" {
		if _, err := s.types.GetByID(ctx, eq.TypeID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewReferentialError("type does not exist", map[string]any{"type_id": eq.TypeID})
			}
			return apperrors.MapError(err)
		}
	}
	return nil
}

// cacheGet fills dst from the cache, returning true on a hit. Cache errors
// are logged and treated as misses.
func (s *ReferenceService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("reference cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("reference cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *ReferenceService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("reference cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ReferenceService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Debug("reference cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func requireAdmin(actor *domain.Worker) error {
	if actor == nil {
		return apperrors.NewUnauthorized("worker required")
	}
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}
