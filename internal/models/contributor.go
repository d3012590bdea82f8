package models

import "gorm.io/gorm"

const (
	PermissionLow    = "low"
	PermissionMedium = "medium"
	PermissionHigh   = "high"
)

// Contributor is the join row granting a user access to a project. The
// project author is never materialized as a row; authorship implies access.
type Contributor struct {
	gorm.Model

	ProjectID  uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	Permission string `gorm:"not null"`
	Role       string `gorm:"not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
