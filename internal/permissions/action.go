// Package permissions decides, per request, whether the acting user may
// perform an action on a resource. Rules are small composable predicates
// held in a lookup table keyed by entity, evaluated with AND semantics.
package permissions

type Action string

const (
	ActionCreate   Action = "create"
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

type Entity string

const (
	EntityProject     Entity = "project"
	EntityContributor Entity = "contributor"
	EntityIssue       Entity = "issue"
	EntityComment     Entity = "comment"
)

type Decision int

const (
	Allowed Decision = iota
	Forbidden
	NotFound
)
