package types

import (
	"os"
	"strings"
)

// ContextUserKey is where the auth middleware stores the authenticated user
// on the request context.
const ContextUserKey = "user"

var (
	// Origins allowed during local development; production origins come
	// from CLIENT_URL and ALLOWED_ORIGINS.
	devOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(devOrigins))
	copy(origins, devOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
