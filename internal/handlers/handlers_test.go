package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/issuedeck-dev/issuedeck/db"
	"github.com/issuedeck-dev/issuedeck/internal/auth"
	"github.com/issuedeck-dev/issuedeck/internal/router"
	"github.com/issuedeck-dev/issuedeck/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testPassword = "Str0ngPass!"

func projectPath(projectID uint, suffix string) string {
	return fmt.Sprintf("/api/projects/%d%s", projectID, suffix)
}

func issuePath(projectID, issueID uint, suffix string) string {
	return fmt.Sprintf("/api/projects/%d/issues/%d%s", projectID, issueID, suffix)
}

func pathSuffix(id uint) string {
	return fmt.Sprintf("/%d", id)
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	db.DB = testutil.OpenDB(t)

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// register signs a user up and returns the auth token and user id.
func register(t *testing.T, r *gin.Engine, name, email string) (string, uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)

	return resp.Token, resp.User.ID
}

func createProject(t *testing.T, r *gin.Engine, token, title string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"title":       title,
		"description": "test project",
		"type":        "backend",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decode(t, w, &resp)

	return resp.ID
}

func addContributor(t *testing.T, r *gin.Engine, token string, projectID, userID uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, projectPath(projectID, "/users"), token, gin.H{
		"user_id":    userID,
		"permission": "medium",
		"role":       "developer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func createIssue(t *testing.T, r *gin.Engine, token string, projectID uint, body gin.H) uint {
	t.Helper()

	if body == nil {
		body = gin.H{
			"title":       "Crash on boot",
			"description": "details",
			"tag":         "bug",
			"priority":    "high",
			"status":      "todo",
		}
	}

	w := doJSON(t, r, http.MethodPost, projectPath(projectID, "/issues"), token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decode(t, w, &resp)

	return resp.ID
}
