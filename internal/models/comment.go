package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model

	Description string `gorm:"not null"`
	IssueID     uint   `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null;index"`

	// Relationships
	Issue  Issue `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
