package audit

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"groupassign/internal/driver"
)

// Store persists invocation records to gorm.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewStore returns a Store backed by db.
func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Save writes one invocation record. A failure to persist is logged but
// never propagated: audit logging must not fail the caller's request.
func (s *Store) Save(invocationID string, in driver.Input, result *driver.Result, duration time.Duration) {
	logs, err := json.Marshal(result.Logs)
	if err != nil {
		s.log.Warn("audit: failed to marshal logs", zap.Error(err))
		logs = []byte("[]")
	}

	rec := Record{
		InvocationID: invocationID,
		StudentCount: len(in.Students),
		GroupCount:   len(in.Groups),
		GoalSetCount: len(in.GoalSets),
		Succeeded:    result.Groups != nil,
		GoalGroup:    result.GoalGroup,
		Reward:       result.Reward,
		DurationMS:   duration.Milliseconds(),
		Logs:         string(logs),
	}

	if err := s.db.Create(&rec).Error; err != nil {
		s.log.Error("audit: failed to persist invocation record", zap.Error(err), zap.String("invocation_id", invocationID))
	}
}
