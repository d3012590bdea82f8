package types

import "time"

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ContributorResponse struct {
	ProjectID  uint         `json:"project_id"`
	User       UserResponse `json:"user"`
	Permission string       `json:"permission"`
	Role       string       `json:"role"`
}

type ProjectResponse struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        string       `json:"type"`
	Author      UserResponse `json:"author"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Contributors []ContributorResponse `json:"contributors"`
}

type IssueResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	ProjectID   uint      `json:"project_id"`
	AuthorID    uint      `json:"author_id"`
	AssigneeID  uint      `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_time"`
}

type CommentResponse struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	IssueID     uint      `json:"issue_id"`
	AuthorID    uint      `json:"author_id"`
	CreatedAt   time.Time `json:"created_time"`
}
