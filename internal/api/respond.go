package api

import (
	"errors"
	"log"
	"net/http"

	"tactical-server/internal/errs"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error onto an HTTP status. Dependency failures
// are logged server-side and surface as a generic 500; the cause never
// reaches the client.
func respondError(c *gin.Context, err error) {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
		return
	}

	var ne *errs.NotFoundError
	if errors.As(err, &ne) {
		c.JSON(http.StatusNotFound, gin.H{"error": ne.Error()})
		return
	}

	var ce *errs.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{"error": ce.Error()})
		return
	}

	var de *errs.DependencyError
	if errors.As(err, &de) {
		log.Printf("dependency failure: %s: %v", de.Op, de.Err)
	} else {
		log.Printf("unexpected error: %v", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// bindPayload reads the request body as a raw JSON object so the validation
// layer can distinguish absent keys from explicit nulls.
func bindPayload(c *gin.Context) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return nil, false
	}
	return payload, true
}
