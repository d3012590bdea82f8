package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/issuedeck-dev/issuedeck/db"
	"github.com/issuedeck-dev/issuedeck/internal/permissions"
	"github.com/issuedeck-dev/issuedeck/internal/resolver"
	"github.com/issuedeck-dev/issuedeck/internal/types"
	"github.com/issuedeck-dev/issuedeck/internal/utils"
)

var (
	projectClients   = make(map[uint]map[*websocket.Conn]bool)
	projectClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type projectEvent struct {
	Type      string      `json:"type"`
	ProjectID uint        `json:"project_id"`
	Data      interface{} `json:"data,omitempty"`
}

// BroadcastProjectEvent pushes an issue or comment event to every client
// subscribed to the project. Failed connections are dropped.
func BroadcastProjectEvent(projectID uint, eventType string, data interface{}) {
	projectClientsMu.RLock()
	clients, exists := projectClients[projectID]
	if !exists || len(clients) == 0 {
		projectClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	projectClientsMu.RUnlock()

	event := projectEvent{
		Type:      eventType,
		ProjectID: projectID,
		Data:      data,
	}

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Failed to broadcast event to client: %v", err)
			projectClientsMu.Lock()
			if clients, exists := projectClients[projectID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(projectClients, projectID)
				}
			}
			projectClientsMu.Unlock()
			conn.Close()
		}
	}
}

// WebSocket subscribes the caller to the project's event feed. Read access
// to the project is required before the connection is upgraded.
func WebSocket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := resolver.Project(db.DB, projectID)

	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	target := permissions.Target{Project: project, ObjectAuthorID: project.AuthorID}

	if !authorize(ctx, db.DB, userID, permissions.EntityProject, permissions.ActionRetrieve, target) {
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	projectClientsMu.Lock()
	if projectClients[project.ID] == nil {
		projectClients[project.ID] = make(map[*websocket.Conn]bool)
	}
	projectClients[project.ID][conn] = true
	projectClientsMu.Unlock()

	defer func() {
		projectClientsMu.Lock()

		if clients, exists := projectClients[project.ID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(projectClients, project.ID)
			}
		}

		projectClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for project %d", project.ID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	if err := conn.WriteJSON(projectEvent{Type: "connected", ProjectID: project.ID}); err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for project %d: %v", project.ID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for project %d: %v", project.ID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for project %d: %v", project.ID, err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for project %d: %v", project.ID, err)
			}
			break
		}
	}
}
