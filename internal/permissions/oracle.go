package permissions

import (
	"errors"

	"github.com/issuedeck-dev/issuedeck/internal/models"
	"gorm.io/gorm"
)

// IsAuthor reports whether the user authored the resource with the given
// author field.
func IsAuthor(userID uint, authorID uint) bool {
	return userID == authorID
}

// IsContributor reports whether the user has access to the project, either
// through a contributor row or by being its author. Authorship is never
// materialized as a row; it is derived here.
func IsContributor(tx *gorm.DB, userID uint, project *models.Project) (bool, error) {
	if project.AuthorID == userID {
		return true, nil
	}

	var count int64

	err := tx.Model(&models.Contributor{}).
		Where("project_id = ? AND user_id = ?", project.ID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// PermissionLevel returns the contributor permission level of the user on
// the project, or false when the user has no contributor row. The project
// author has no level of their own.
func PermissionLevel(tx *gorm.DB, userID uint, project *models.Project) (string, bool, error) {
	var contributor models.Contributor

	err := tx.Where("project_id = ? AND user_id = ?", project.ID, userID).
		First(&contributor).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return contributor.Permission, true, nil
}
