package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuedeck-dev/issuedeck/internal/permissions"
	"gorm.io/gorm"
)

// errHandled signals that a transaction closure already wrote the response;
// it rolls the transaction back without a second reply.
var errHandled = errors.New("response already written")

func authorize(ctx *gin.Context, tx *gorm.DB, userID uint, entity permissions.Entity, action permissions.Action, target permissions.Target) bool {
	decision, err := permissions.Evaluate(tx, userID, entity, action, target)

	if err != nil {
		log.Printf("Permission evaluation failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return false
	}

	switch decision {
	case permissions.Allowed:
		return true
	case permissions.NotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return false
	default:
		// Deny without disclosing which relationship was missing.
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		return false
	}
}

func transactionFailed(ctx *gin.Context, err error) bool {
	if err == nil || errors.Is(err, errHandled) {
		return err != nil
	}

	log.Printf("Transaction failed: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	return true
}
