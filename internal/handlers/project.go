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

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=backend frontend ios android"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=backend frontend ios android"`
}

func projectResponse(project *models.Project) types.ProjectResponse {
	return types.ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Type:        project.Type,
		Author: types.UserResponse{
			ID:    project.Author.ID,
			Name:  project.Author.Name,
			Email: project.Author.Email,
		},
	}
}

func CreateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BindingErrors(err))
		return
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		AuthorID:    currentUser.ID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		transactionFailed(ctx, err)
		return
	}

	response := projectResponse(&project)
	response.Author = types.UserResponse{ID: currentUser.ID, Name: currentUser.Name, Email: currentUser.Email}

	ctx.JSON(http.StatusCreated, response)
}

// ListProjects returns only projects the caller authored or contributes to;
// everything else is invisible rather than forbidden.
func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contributed := db.DB.Model(&models.Contributor{}).
		Select("project_id").
		Where("user_id = ?", userID)

	var projects []models.Project

	if err := db.DB.Preload("Author").
		Where("author_id = ? OR id IN (?)", userID, contributed).
		Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func RetrieveProject(ctx *gin.Context) {
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

	if !authorize(ctx, db.DB, userID, permissions.EntityProject, permissions.ActionRetrieve, target) {
		return
	}

	if err := db.DB.Preload("Author").Preload("Contributors.User").First(project, project.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	contributors := make([]types.ContributorResponse, 0, len(project.Contributors))

	for _, contributor := range project.Contributors {
		contributors = append(contributors, types.ContributorResponse{
			ProjectID: contributor.ProjectID,
			User: types.UserResponse{
				ID:    contributor.User.ID,
				Name:  contributor.User.Name,
				Email: contributor.User.Email,
			},
			Permission: contributor.Permission,
			Role:       contributor.Role,
		})
	}

	ctx.JSON(http.StatusOK, types.ProjectDetailResponse{
		ProjectResponse: projectResponse(project),
		Contributors:    contributors,
	})
}

func UpdateProject(ctx *gin.Context) {
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

	var project *models.Project

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		project, err = resolver.Project(tx, projectID)

		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return errHandled
			}
			return err
		}

		target := permissions.Target{Project: project, ObjectAuthorID: project.AuthorID}

		if !authorize(ctx, tx, userID, permissions.EntityProject, permissions.ActionUpdate, target) {
			return errHandled
		}

		var req UpdateProjectRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BindingErrors(err))
			return errHandled
		}

		project.Title = req.Title
		project.Description = req.Description
		project.Type = req.Type

		return tx.Save(project).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	if err := db.DB.Preload("Author").First(project, project.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
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

		if !authorize(ctx, tx, userID, permissions.EntityProject, permissions.ActionDelete, target) {
			return errHandled
		}

		// Hard delete so the storage-level cascades take the issue and
		// comment subtree with the project.
		return tx.Unscoped().Delete(project).Error
	})

	if transactionFailed(ctx, txErr) {
		return
	}

	ctx.Status(http.StatusNoContent)
}
