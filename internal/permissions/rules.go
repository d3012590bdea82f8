package permissions

import "gorm.io/gorm"

// rules is the per-entity permission table. Every predicate must allow for
// the decision to be Allowed. Actions absent from every predicate's set are
// open to any authenticated user (project create and list, which are
// collection-level and filtered in the action layer).
var rules = map[Entity][]Predicate{
	EntityProject: {
		AuthorOrContributor(ActionRetrieve),
		AuthorOnly(ActionUpdate, ActionDelete),
	},
	EntityContributor: {
		AuthorOnly(ActionCreate, ActionDelete),
		AuthorOrContributor(ActionList),
	},
	EntityIssue: {
		AuthorOrContributor(ActionCreate, ActionList, ActionRetrieve),
		ObjectAuthorOnly(ActionUpdate, ActionDelete),
	},
	EntityComment: {
		AuthorOrContributor(ActionCreate, ActionList, ActionRetrieve),
		ObjectAuthorOnly(ActionUpdate, ActionDelete),
	},
}

// Evaluate runs the rule set for the entity against the action and target.
// Callers resolve the full resource chain before evaluating, so a missing
// resource is answered NotFound upstream and never reaches this point.
// Evaluate itself never mutates state.
func Evaluate(tx *gorm.DB, userID uint, entity Entity, action Action, target Target) (Decision, error) {
	for _, predicate := range rules[entity] {
		ok, err := predicate(tx, userID, action, target)

		if err != nil {
			return Forbidden, err
		}

		if !ok {
			return Forbidden, nil
		}
	}

	return Allowed, nil
}
