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

type AddContributorRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	Permission string `json:"permission" binding:"required,oneof=low medium high"`
	Role       string `json:"role" binding:"required"`
}

func contributorResponse(contributor *models.Contributor) types.ContributorResponse {
	return types.ContributorResponse{
		ProjectID: contributor.ProjectID,
		User: types.UserResponse{
			ID:    contributor.User.ID,
			Name:  contributor.User.Name,
			Email: contributor.User.Email,
		},
		Permission: contributor.Permission,
		Role:       contributor.Role,
	}
}

func AddContributor(ctx *gin.Context) {
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

	var contributor models.Contributor

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, err := resolver.Project(tx, projectID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project, ObjectAuthorID: project.AuthorID}

		if !authorize(ctx, tx, userID, permissions.EntityContributor, permissions.ActionCreate, target) {
			return errHandled
		}

		var req AddContributorRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BindingErrors(err))
			return errHandled
		}

		user, err := resolver.User(tx, req.UserID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusBadRequest, utils.FieldErrors{"user_id": {"User does not exist."}})
				return errHandled
			}
			return err
		}

		// The author already has full access; a contributor row for them
		// would duplicate the derived relationship.
		if user.ID == project.AuthorID {
			ctx.JSON(http.StatusBadRequest, utils.FieldErrors{"user_id": {"User is already the project author."}})
			return errHandled
		}

		contributor = models.Contributor{
			ProjectID:  project.ID,
			UserID:     user.ID,
			Permission: req.Permission,
			Role:       req.Role,
		}

		// The (project_id, user_id) unique index closes the check-then-insert
		// race; gorm surfaces the violation as ErrDuplicatedKey.
		if err := tx.Create(&contributor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				ctx.JSON(http.StatusConflict, gin.H{"error": "User is already a contributor of this project"})
				return errHandled
			}
			return err
		}

		contributor.User = *user

		return nil
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	ctx.JSON(http.StatusCreated, contributorResponse(&contributor))
}

func ListContributors(ctx *gin.Context) {
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

	target := permissions.Target{Project: project, ObjectAuthorID: project.AuthorID}

	if !authorize(ctx, db.DB, userID, permissions.EntityContributor, permissions.ActionList, target) {
		return
	}

	var contributors []models.Contributor

	if err := db.DB.Preload("User").Where("project_id = ?", project.ID).Find(&contributors).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contributors"})
		return
	}

	response := make([]types.ContributorResponse, 0, len(contributors))

	for i := range contributors {
		response = append(response, contributorResponse(&contributors[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// ContributorDetail answers 405 unconditionally: single-contributor
// retrieval is not part of the API surface, only list and removal are.
func ContributorDetail(ctx *gin.Context) {
	ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

func RemoveContributor(ctx *gin.Context) {
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

	targetUserID, err := utils.GetUserID(ctx)

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

		contributor, err := resolver.Contributor(tx, project.ID, targetUserID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Contributor not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project, ObjectAuthorID: project.AuthorID}

		if !authorize(ctx, tx, userID, permissions.EntityContributor, permissions.ActionDelete, target) {
			return errHandled
		}

		// Hard delete so the same user can be added back later; a soft
		// deleted row would keep occupying the unique index.
		return tx.Unscoped().Delete(contributor).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	ctx.Status(http.StatusNoContent)
}
