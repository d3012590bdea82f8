package models

import "gorm.io/gorm"

const (
	IssueTagBug         = "bug"
	IssueTagImprovement = "improvement"
	IssueTagTask        = "task"
)

const (
	IssuePriorityLow    = "low"
	IssuePriorityMedium = "medium"
	IssuePriorityHigh   = "high"
)

const (
	IssueStatusTodo    = "todo"
	IssueStatusOngoing = "ongoing"
	IssueStatusDone    = "done"
)

type Issue struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Tag         string `gorm:"not null"`
	Priority    string `gorm:"not null"`
	Status      string `gorm:"not null"`
	ProjectID   uint   `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null;index"`
	AssigneeID  uint   `gorm:"not null;index"` // defaults to AuthorID when not supplied

	// Relationships
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee User      `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
