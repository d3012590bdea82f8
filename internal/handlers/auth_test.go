package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r := setup(t)

	token, userID := register(t, r, "John Doe", "john@example.com")
	require.NotZero(t, userID)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, w, &me)
	require.Equal(t, "john@example.com", me.User.Email)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "john@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setup(t)

	register(t, r, "John Doe", "john@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "John Again",
		"email":    "john@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	decode(t, w, &errs)
	require.Equal(t, []string{"User with this email already exists"}, errs["email"])
}

func TestRegisterInvalidEmail(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "John Doe",
		"email":    "john-doe",
		"password": testPassword,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	decode(t, w, &errs)
	require.Contains(t, errs, "email")
}

func TestRegisterPasswordPolicy(t *testing.T) {
	r := setup(t)

	cases := []struct {
		name     string
		password string
		message  string
	}{
		{"too short", "Pa1!", "This password is too short. It must contain at least 8 characters."},
		{"no uppercase", "passw0rd!", "This password must contain at least 1 uppercase letter."},
		{"no lowercase", "PASSW0RD!", "This password must contain at least 1 lowercase letter."},
		{"no digit", "Password!", "This password must contain at least 1 number."},
		{"no special", "Passw0rd", "This password must contain at least 1 special character."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
				"name":     "John Doe",
				"email":    "john@example.com",
				"password": tc.password,
			})
			require.Equal(t, http.StatusBadRequest, w.Code)

			var errs map[string][]string
			decode(t, w, &errs)
			require.Contains(t, errs["password"], tc.message)
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := setup(t)

	register(t, r, "John Doe", "john@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "john@example.com",
		"password": "Wr0ngPass!",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresToken(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateUserPassword(t *testing.T) {
	r := setup(t)

	token, _ := register(t, r, "John Doe", "john@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/auth/me", token, gin.H{
		"current_password": "wrong",
		"new_password":     "N3wStrong!",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/auth/me", token, gin.H{
		"current_password": testPassword,
		"new_password":     "N3wStrong!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "john@example.com",
		"password": "N3wStrong!",
	})
	require.Equal(t, http.StatusOK, w.Code)
}
