package txlog

import (
	"context"
	"sort"
	"time"

	"ruzgar-backend/internal/idgen"
	"ruzgar-backend/internal/models"
	"ruzgar-backend/internal/store"

	"go.uber.org/zap"
)

// Repository is the append-only audit trail of inventory and session events.
// Appends never fail the calling operation: the store facade degrades to the
// in-memory ring on backend errors, and any remaining failure is only logged.
type Repository struct {
	store  store.Store
	logger *zap.Logger
}

func NewRepository(st store.Store, logger *zap.Logger) *Repository {
	return &Repository{store: st, logger: logger}
}

// Append inserts one log entry, minting id and timestamp when unset.
func (r *Repository) Append(ctx context.Context, entry *models.TransactionLog) bool {
	if entry.ID == "" {
		entry.ID = idgen.Generate()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if err := r.store.AppendLog(ctx, entry); err != nil {
		r.logger.Error("işlem kaydı yazılamadı",
			zap.String("actionType", string(entry.ActionType)),
			zap.Error(err))
		return false
	}
	return true
}

// ListAll returns every entry newest-first. Backends are expected to return
// them ordered, but we re-sort by timestamp as a safety net since callers
// must not depend on store ordering guarantees.
func (r *Repository) ListAll(ctx context.Context) []models.TransactionLog {
	logs, err := r.store.ListLogs(ctx)
	if err != nil {
		r.logger.Error("işlem kayıtları listelenemedi", zap.Error(err))
		return []models.TransactionLog{}
	}
	if logs == nil {
		logs = []models.TransactionLog{}
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs
}
