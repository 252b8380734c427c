package models

type Task struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	ProjectID   uint64 `gorm:"not null" json:"project_id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"type:varchar(30);not null" json:"status"`

	// Relations
	Project Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Logs    []TaskLog `gorm:"foreignKey:TaskID" json:"logs,omitempty"`
}
