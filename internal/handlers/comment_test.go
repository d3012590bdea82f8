package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func createComment(t *testing.T, r *gin.Engine, token string, projectID, issueID uint) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, issuePath(projectID, issueID, "/comments"), token, gin.H{
		"description": "looking into it",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decode(t, w, &resp)

	return resp.ID
}

func TestCreateAndListComments(t *testing.T) {
	r := setup(t)

	tokenA, idA := register(t, r, "Alice", "alice@example.com")
	tokenB, idB := register(t, r, "Bob", "bob@example.com")
	tokenC, _ := register(t, r, "Carol", "carol@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	issueID := createIssue(t, r, tokenA, projectID, nil)

	createComment(t, r, tokenA, projectID, issueID)
	createComment(t, r, tokenB, projectID, issueID)

	w := doJSON(t, r, http.MethodGet, issuePath(projectID, issueID, "/comments"), tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []struct {
		AuthorID uint `json:"author_id"`
	}
	decode(t, w, &comments)
	require.Len(t, comments, 2)
	require.Equal(t, idA, comments[0].AuthorID)
	require.Equal(t, idB, comments[1].AuthorID)

	w = doJSON(t, r, http.MethodGet, issuePath(projectID, issueID, "/comments"), tokenC, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateCommentObjectAuthorOnly(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	tokenB, idB := register(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	issueID := createIssue(t, r, tokenA, projectID, nil)
	commentID := createComment(t, r, tokenB, projectID, issueID)

	path := issuePath(projectID, issueID, "/comments") + pathSuffix(commentID)

	// The project author did not write this comment.
	w := doJSON(t, r, http.MethodPut, path, tokenA, gin.H{"description": "edited"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, path, tokenB, gin.H{"description": "edited"})
	require.Equal(t, http.StatusOK, w.Code)

	var comment struct {
		Description string `json:"description"`
	}
	decode(t, w, &comment)
	require.Equal(t, "edited", comment.Description)
}

func TestDeleteCommentObjectAuthorOnly(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	tokenB, idB := register(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, "Tracker")
	addContributor(t, r, tokenA, projectID, idB)

	issueID := createIssue(t, r, tokenA, projectID, nil)
	commentID := createComment(t, r, tokenB, projectID, issueID)

	path := issuePath(projectID, issueID, "/comments") + pathSuffix(commentID)

	w := doJSON(t, r, http.MethodDelete, path, tokenA, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, tokenB, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, path, tokenB, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRetrieveCommentWrongChainIsNotFound(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")

	projectA := createProject(t, r, tokenA, "Tracker A")
	projectB := createProject(t, r, tokenA, "Tracker B")

	issueA := createIssue(t, r, tokenA, projectA, nil)
	issueB := createIssue(t, r, tokenA, projectB, nil)

	commentID := createComment(t, r, tokenA, projectA, issueA)

	// Right comment, wrong issue.
	w := doJSON(t, r, http.MethodGet, issuePath(projectB, issueB, "/comments")+pathSuffix(commentID), tokenA, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Right issue id, wrong project.
	w = doJSON(t, r, http.MethodGet, issuePath(projectB, issueA, "/comments")+pathSuffix(commentID), tokenA, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCommentBlankDescription(t *testing.T) {
	r := setup(t)

	tokenA, _ := register(t, r, "Alice", "alice@example.com")
	projectID := createProject(t, r, tokenA, "Tracker")
	issueID := createIssue(t, r, tokenA, projectID, nil)

	w := doJSON(t, r, http.MethodPost, issuePath(projectID, issueID, "/comments"), tokenA, gin.H{
		"description": "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	decode(t, w, &errs)
	require.Equal(t, []string{"This field may not be blank."}, errs["description"])
}
