// Package resolver loads resources addressed by path identifiers, checking
// that every link of the chain (comment -> issue -> project) belongs to its
// stated parent. A broken chain is NotFound, never a permission error, so
// cross-project probing cannot distinguish existence by status code.
// Resolution always runs before permission evaluation.
package resolver

import (
	"errors"

	"github.com/issuedeck-dev/issuedeck/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("resource not found")

func Project(tx *gorm.DB, projectID uint) (*models.Project, error) {
	var project models.Project

	if err := tx.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &project, nil
}

// Issue resolves an issue under the given project. An issue that exists
// under a different project is NotFound.
func Issue(tx *gorm.DB, projectID, issueID uint) (*models.Issue, error) {
	var issue models.Issue

	err := tx.Where("id = ? AND project_id = ?", issueID, projectID).
		First(&issue).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &issue, nil
}

// Comment resolves a comment through the full chain: the comment must
// belong to the issue and the issue to the project.
func Comment(tx *gorm.DB, projectID, issueID, commentID uint) (*models.Comment, error) {
	var comment models.Comment

	err := tx.Joins("JOIN issues ON issues.id = comments.issue_id").
		Where("comments.id = ? AND comments.issue_id = ? AND issues.project_id = ?", commentID, issueID, projectID).
		First(&comment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &comment, nil
}

// Contributor resolves a contributor row by its compound (project, user)
// identity; contributor rows have no addressable surrogate id in the API.
func Contributor(tx *gorm.DB, projectID, userID uint) (*models.Contributor, error) {
	var contributor models.Contributor

	err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&contributor).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &contributor, nil
}

// User resolves a user by id, for validating contributor and assignee
// targets.
func User(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User

	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}
