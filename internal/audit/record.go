// Package audit persists a record of each invocation of the Driver for
// later inspection: which goal set (if any) was chosen, the reward it
// achieved, how long the solve took, and its accumulated log lines.
package audit

import "time"

// Record is one invocation's audit trail, stored as a single gorm row.
type Record struct {
	ID          uint `gorm:"primaryKey"`
	InvocationID string `gorm:"uniqueIndex;size:64"`
	StudentCount int
	GroupCount   int
	GoalSetCount int
	Succeeded    bool
	GoalGroup    int
	Reward       float64
	DurationMS   int64
	Logs         string `gorm:"type:text"`
	CreatedAt    time.Time
}

// TableName pins the table name so renaming the Go type doesn't migrate a
// new table.
func (Record) TableName() string { return "invocation_records" }
