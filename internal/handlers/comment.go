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

type CreateCommentRequest struct {
	Description string `json:"description" binding:"required"`
}

type UpdateCommentRequest struct {
	Description string `json:"description" binding:"required"`
}

func commentResponse(comment *models.Comment) types.CommentResponse {
	return types.CommentResponse{
		ID:          comment.ID,
		Description: comment.Description,
		IssueID:     comment.IssueID,
		AuthorID:    comment.AuthorID,
		CreatedAt:   comment.CreatedAt,
	}
}

// resolveIssueChain loads the project and issue for comment routes, writing
// 404 on any broken link.
func resolveIssueChain(ctx *gin.Context, tx *gorm.DB, projectID, issueID uint) (*models.Project, *models.Issue, bool) {
	project, err := resolver.Project(tx, projectID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return nil, nil, false
	}

	issue, err := resolver.Issue(tx, project.ID, issueID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return nil, nil, false
	}

	return project, issue, true
}

func CreateComment(ctx *gin.Context) {
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

	var comment models.Comment

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, issue, ok := resolveIssueChain(ctx, tx, projectID, issueID)

		if !ok {
			return errHandled
		}

		target := permissions.Target{Project: project}

		if !authorize(ctx, tx, userID, permissions.EntityComment, permissions.ActionCreate, target) {
			return errHandled
		}

		var req CreateCommentRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BindingErrors(err))
			return errHandled
		}

		comment = models.Comment{
			Description: req.Description,
			IssueID:     issue.ID,
			AuthorID:    userID,
		}

		return tx.Create(&comment).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	BroadcastProjectEvent(projectID, "comment_created", commentResponse(&comment))

	ctx.JSON(http.StatusCreated, commentResponse(&comment))
}

func ListComments(ctx *gin.Context) {
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

	project, issue, ok := resolveIssueChain(ctx, db.DB, projectID, issueID)

	if !ok {
		return
	}

	target := permissions.Target{Project: project}

	if !authorize(ctx, db.DB, userID, permissions.EntityComment, permissions.ActionList, target) {
		return
	}

	var comments []models.Comment

	if err := db.DB.Where("issue_id = ?", issue.ID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]types.CommentResponse, 0, len(comments))

	for i := range comments {
		response = append(response, commentResponse(&comments[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func RetrieveComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, issueID, commentID, err := utils.GetProjectIssueCommentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, _, ok := resolveIssueChain(ctx, db.DB, projectID, issueID)

	if !ok {
		return
	}

	comment, err := resolver.Comment(db.DB, projectID, issueID, commentID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		}
		return
	}

	target := permissions.Target{Project: project, ObjectAuthorID: comment.AuthorID}

	if !authorize(ctx, db.DB, userID, permissions.EntityComment, permissions.ActionRetrieve, target) {
		return
	}

	ctx.JSON(http.StatusOK, commentResponse(comment))
}

func UpdateComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, issueID, commentID, err := utils.GetProjectIssueCommentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment *models.Comment

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, _, ok := resolveIssueChain(ctx, tx, projectID, issueID)

		if !ok {
			return errHandled
		}

		comment, err = resolver.Comment(tx, projectID, issueID, commentID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project, ObjectAuthorID: comment.AuthorID}

		if !authorize(ctx, tx, userID, permissions.EntityComment, permissions.ActionUpdate, target) {
			return errHandled
		}

		var req UpdateCommentRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BindingErrors(err))
			return errHandled
		}

		comment.Description = req.Description

		return tx.Save(comment).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	BroadcastProjectEvent(projectID, "comment_updated", commentResponse(comment))

	ctx.JSON(http.StatusOK, commentResponse(comment))
}

func DeleteComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, issueID, commentID, err := utils.GetProjectIssueCommentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, _, ok := resolveIssueChain(ctx, tx, projectID, issueID)

		if !ok {
			return errHandled
		}

		comment, err := resolver.Comment(tx, projectID, issueID, commentID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project, ObjectAuthorID: comment.AuthorID}

		if !authorize(ctx, tx, userID, permissions.EntityComment, permissions.ActionDelete, target) {
			return errHandled
		}

		return tx.Unscoped().Delete(comment).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	BroadcastProjectEvent(projectID, "comment_deleted", gin.H{"id": commentID})

	ctx.Status(http.StatusNoContent)
}
