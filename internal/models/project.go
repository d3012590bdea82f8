package models

import "gorm.io/gorm"

const (
	ProjectTypeBackend  = "backend"
	ProjectTypeFrontend = "frontend"
	ProjectTypeIOS      = "ios"
	ProjectTypeAndroid  = "android"
)

type Project struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Type        string `gorm:"not null"`
	AuthorID    uint   `gorm:"not null;index"`

	// Relationships
	Author       User          `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Contributors []Contributor `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Issues       []Issue       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
