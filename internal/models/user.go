package models

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Username     string `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Relations
	OwnedProjects []Project       `gorm:"foreignKey:OwnerID" json:"owned_projects,omitempty"`
	Memberships   []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
	Logs          []TaskLog       `gorm:"foreignKey:UserID" json:"logs,omitempty"`
}
