package models

type Project struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	Title   string `gorm:"type:varchar(30);not null" json:"title"`
	OwnerID uint64 `gorm:"not null" json:"owner_id"`

	// Relations
	Owner   User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
