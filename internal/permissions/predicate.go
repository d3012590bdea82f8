package permissions

import (
	"github.com/issuedeck-dev/issuedeck/internal/models"
	"gorm.io/gorm"
)

// Target carries the resolved resources a predicate may inspect. Project
// must be set for any action scoped to a project; ObjectAuthorID is the
// author of the addressed instance, zero for collection actions where no
// instance exists yet.
type Target struct {
	Project        *models.Project
	ObjectAuthorID uint
}

// Predicate answers whether the user may perform the action against the
// target. Predicates are vacuously true for actions outside their set.
type Predicate func(tx *gorm.DB, userID uint, action Action, target Target) (bool, error)

func actionIn(action Action, set []Action) bool {
	for _, a := range set {
		if a == action {
			return true
		}
	}
	return false
}

// AuthorOnly restricts the listed actions to the project author.
func AuthorOnly(actions ...Action) Predicate {
	return func(tx *gorm.DB, userID uint, action Action, target Target) (bool, error) {
		if !actionIn(action, actions) {
			return true, nil
		}
		return IsAuthor(userID, target.Project.AuthorID), nil
	}
}

// ContributorOnly restricts the listed actions to project contributors
// (the author counts, see IsContributor).
func ContributorOnly(actions ...Action) Predicate {
	return func(tx *gorm.DB, userID uint, action Action, target Target) (bool, error) {
		if !actionIn(action, actions) {
			return true, nil
		}
		return IsContributor(tx, userID, target.Project)
	}
}

// AuthorOrContributor restricts the listed actions to the project author or
// any contributor of the project.
func AuthorOrContributor(actions ...Action) Predicate {
	return func(tx *gorm.DB, userID uint, action Action, target Target) (bool, error) {
		if !actionIn(action, actions) {
			return true, nil
		}

		if IsAuthor(userID, target.Project.AuthorID) {
			return true, nil
		}

		return IsContributor(tx, userID, target.Project)
	}
}

// ObjectAuthorOnly restricts the listed actions to the author of the
// addressed instance itself, not the project author. Used for issue and
// comment mutation.
func ObjectAuthorOnly(actions ...Action) Predicate {
	return func(tx *gorm.DB, userID uint, action Action, target Target) (bool, error) {
		if !actionIn(action, actions) {
			return true, nil
		}
		return IsAuthor(userID, target.ObjectAuthorID), nil
	}
}
