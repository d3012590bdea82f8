package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuedeck-dev/issuedeck/db"
	"github.com/issuedeck-dev/issuedeck/internal/models"
	"github.com/issuedeck-dev/issuedeck/internal/permissions"
	"github.com/issuedeck-dev/issuedeck/internal/resolver"
	"github.com/issuedeck-dev/issuedeck/internal/types"
	"github.com/issuedeck-dev/issuedeck/internal/utils"
	"gorm.io/gorm"
)

type CreateIssueRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Tag         string `json:"tag" binding:"required,oneof=bug improvement task"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	Status      string `json:"status" binding:"omitempty,oneof=todo ongoing done"`
	AssigneeID  uint   `json:"assignee_id"`
}

type UpdateIssueRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Tag         string `json:"tag" binding:"required,oneof=bug improvement task"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	Status      string `json:"status" binding:"required,oneof=todo ongoing done"`
	AssigneeID  uint   `json:"assignee_id"`
}

func issueResponse(issue *models.Issue) types.IssueResponse {
	return types.IssueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Tag:         issue.Tag,
		Priority:    issue.Priority,
		Status:      issue.Status,
		ProjectID:   issue.ProjectID,
		AuthorID:    issue.AuthorID,
		AssigneeID:  issue.AssigneeID,
		CreatedAt:   issue.CreatedAt,
	}
}

// validAssignee checks that an explicitly supplied assignee exists. A zero
// id means not supplied.
func validAssignee(ctx *gin.Context, tx *gorm.DB, assigneeID uint) (bool, error) {
	if assigneeID == 0 {
		return true, nil
	}

	_, err := resolver.User(tx, assigneeID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, utils.FieldErrors{"assignee_id": {"User does not exist."}})
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func CreateIssue(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issue models.Issue

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, err := resolver.Project(tx, projectID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project}

		if !authorize(ctx, tx, userID, permissions.EntityIssue, permissions.ActionCreate, target) {
			return errHandled
		}

		var req CreateIssueRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BindingErrors(err))
			return errHandled
		}

		ok, err := validAssignee(ctx, tx, req.AssigneeID)

		if err != nil {
			return err
		}

		if !ok {
			return errHandled
		}

		issue = models.Issue{
			Title:       req.Title,
			Description: req.Description,
			Tag:         req.Tag,
			Priority:    req.Priority,
			Status:      req.Status,
			ProjectID:   project.ID,
			AuthorID:    userID,
			AssigneeID:  req.AssigneeID,
		}

		if issue.Status == "" {
			issue.Status = models.IssueStatusTodo
		}

		// Unassigned issues fall back to their author.
		if issue.AssigneeID == 0 {
			issue.AssigneeID = userID
		}

		return tx.Create(&issue).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	BroadcastProjectEvent(issue.ProjectID, "issue_created", issueResponse(&issue))

	ctx.JSON(http.StatusCreated, issueResponse(&issue))
}

func ListIssues(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := resolver.Project(db.DB, projectID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	target := permissions.Target{Project: project}

	if !authorize(ctx, db.DB, userID, permissions.EntityIssue, permissions.ActionList, target) {
		return
	}

	var issues []models.Issue

	if err := db.DB.Where("project_id = ?", project.ID).Order("created_at DESC").Find(&issues).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	response := make([]types.IssueResponse, 0, len(issues))

	for i := range issues {
		response = append(response, issueResponse(&issues[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func RetrieveIssue(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, issueID, err := utils.GetProjectIssueID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := resolver.Project(db.DB, projectID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	issue, err := resolver.Issue(db.DB, project.ID, issueID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	target := permissions.Target{Project: project, ObjectAuthorID: issue.AuthorID}

	if !authorize(ctx, db.DB, userID, permissions.EntityIssue, permissions.ActionRetrieve, target) {
		return
	}

	ctx.JSON(http.StatusOK, issueResponse(issue))
}

func UpdateIssue(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, issueID, err := utils.GetProjectIssueID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issue *models.Issue

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, err := resolver.Project(tx, projectID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return errHandled
			}
			return err
		}

		issue, err = resolver.Issue(tx, project.ID, issueID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project, ObjectAuthorID: issue.AuthorID}

		if !authorize(ctx, tx, userID, permissions.EntityIssue, permissions.ActionUpdate, target) {
			return errHandled
		}

		var req UpdateIssueRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BindingErrors(err))
			return errHandled
		}

		ok, err := validAssignee(ctx, tx, req.AssigneeID)

		if err != nil {
			return err
		}

		if !ok {
			return errHandled
		}

		issue.Title = req.Title
		issue.Description = req.Description
		issue.Tag = req.Tag
		issue.Priority = req.Priority
		issue.Status = req.Status

		if req.AssigneeID != 0 {
			issue.AssigneeID = req.AssigneeID
		}

		return tx.Save(issue).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	BroadcastProjectEvent(issue.ProjectID, "issue_updated", issueResponse(issue))

	ctx.JSON(http.StatusOK, issueResponse(issue))
}

func DeleteIssue(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, issueID, err := utils.GetProjectIssueID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, err := resolver.Project(tx, projectID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return errHandled
			}
			return err
		}

		issue, err := resolver.Issue(tx, project.ID, issueID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project, ObjectAuthorID: issue.AuthorID}

		if !authorize(ctx, tx, userID, permissions.EntityIssue, permissions.ActionDelete, target) {
			return errHandled
		}

		// Hard delete; comments cascade at the storage level.
		return tx.Unscoped().Delete(issue).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	BroadcastProjectEvent(projectID, "issue_deleted", gin.H{"id": issueID})

	ctx.Status(http.StatusNoContent)
}
