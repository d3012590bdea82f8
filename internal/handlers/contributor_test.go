package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAddContributorAuthorOnly(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	tokenB, idB := register(t, r, "Bob", "bob@example.com")
	_, idC := register(t, r, "Carol", "carol@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	// A contributor cannot add further contributors.
	w := doJSON(t, r, http.MethodPost, projectPath(projectID, "/users"), tokenB, gin.H{
		"user_id":    idC,
		"permission": "low",
		"role":       "tester",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddContributorTwiceConflicts(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	_, idB := register(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	w := doJSON(t, r, http.MethodPost, projectPath(projectID, "/users"), tokenA, gin.H{
		"user_id":    idB,
		"permission": "high",
		"role":       "lead",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAddContributorUnknownUser(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	projectID := createProject(t, r, tokenA, "Tracker")

	w := doJSON(t, r, http.MethodPost, projectPath(projectID, "/users"), tokenA, gin.H{
		"user_id":    9999,
		"permission": "low",
		"role":       "tester",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	decode(t, w, &errs)
	require.Contains(t, errs, "user_id")
}

func TestAddContributorAuthorRejected(t *testing.T) {
	r := setup(t)

	tokenA, idA := register(t, r, "Alice", "alice@example.com")
	projectID := createProject(t, r, tokenA, "Tracker")

	w := doJSON(t, r, http.MethodPost, projectPath(projectID, "/users"), tokenA, gin.H{
		"user_id":    idA,
		"permission": "high",
		"role":       "owner",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddContributorInvalidPermission(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	_, idB := register(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")

	w := doJSON(t, r, http.MethodPost, projectPath(projectID, "/users"), tokenA, gin.H{
		"user_id":    idB,
		"permission": "superuser",
		"role":       "lead",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	decode(t, w, &errs)
	require.Contains(t, errs, "permission")
}

func TestListContributors(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	tokenB, idB := register(t, r, "Bob", "bob@example.com")
	tokenC, _ := register(t, r, "Carol", "carol@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	w := doJSON(t, r, http.MethodGet, projectPath(projectID, "/users"), tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var contributors []struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Role string `json:"role"`
	}
	decode(t, w, &contributors)
	require.Len(t, contributors, 1)
	require.Equal(t, "bob@example.com", contributors[0].User.Email)

	w = doJSON(t, r, http.MethodGet, projectPath(projectID, "/users"), tokenC, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestContributorDetailNotAllowed(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	_, idB := register(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	path := fmt.Sprintf("/api/projects/%d/users/%d", projectID, idB)

	w := doJSON(t, r, http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRemoveContributorAndReAdd(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	tokenB, idB := register(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	path := fmt.Sprintf("/api/projects/%d/users/%d", projectID, idB)

	// Contributors cannot remove themselves.
	w := doJSON(t, r, http.MethodDelete, path, tokenB, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, tokenA, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, tokenA, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The (project, user) slot is free again after removal.
	addContributor(t, r, tokenA, projectID, idB)
}
