package webserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/social-watch/rumour-tracker/src/api/types"
)

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is logged and reported as an internal error.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
	case errors.Is(err, types.ErrNotVerifier):
		c.JSON(http.StatusForbidden, gin.H{"err": err.Error()})
	case errors.Is(err, types.ErrAlreadyVerified), errors.Is(err, types.ErrDuplicateReport):
		c.JSON(http.StatusConflict, gin.H{"err": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "internal error"})
	}
}
