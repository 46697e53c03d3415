package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// WorkOrderRenderer produces the printable work order for a ticket. The
// rendering backend is pluggable; the lifecycle only cares that a render
// attempt happened so it can record the work-order flag.
type WorkOrderRenderer interface {
	Render(ctx context.Context, ticket *domain.MaintenanceTicket, parts []domain.Part) error
}

type loggingWorkOrderRenderer struct {
	logger *zap.Logger
}

// NewLoggingWorkOrderRenderer returns a renderer that only logs the request.
// Used until a document backend is wired in.
func NewLoggingWorkOrderRenderer(logger *zap.Logger) WorkOrderRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingWorkOrderRenderer{logger: logger}
}

func (r *loggingWorkOrderRenderer) Render(_ context.Context, ticket *domain.MaintenanceTicket, parts []domain.Part) error {
	r.logger.Info("work order rendered",
		zap.String("ticket_id", ticket.ID),
		zap.Int("parts", len(parts)))
	return nil
}
