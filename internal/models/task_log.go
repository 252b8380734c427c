package models

import "time"

// TaskLog is an append-only audit entry recording who did what to a task.
// Rows are only ever removed transitively when their task, project, or
// author is deleted.
type TaskLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null" json:"task_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Action    string    `gorm:"type:varchar(255);not null" json:"action"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
