package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/social-watch/rumour-tracker/src/api/report"
	"github.com/social-watch/rumour-tracker/src/api/rumour"
	"github.com/social-watch/rumour-tracker/src/api/user"
)

// Rumours serves the three read views: trending list, detail and summary.
type Rumours struct {
	registry rumour.Registry
	ledger   report.Ledger
	users    user.Directory
}

func NewRumours(db *gorm.DB) Rumours {
	return Rumours{
		registry: rumour.NewRegistry(db),
		ledger:   report.NewLedger(db),
		users:    user.NewDirectory(db),
	}
}

func (h Rumours) List(c *gin.Context) {
	rumours, err := h.registry.List(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rumours": rumours})
}

func (h Rumours) Detail(c *gin.Context) {
	rumourID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad rumour id"})
		return
	}

	detail, err := h.registry.Get(c, rumourID)
	if err != nil {
		writeError(c, err)
		return
	}
	reports, err := h.ledger.ForRumour(c, rumourID)
	if err != nil {
		writeError(c, err)
		return
	}
	users, err := h.users.List(c)
	if err != nil {
		writeError(c, err)
		return
	}
	verifiers, err := h.users.Verifiers(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rumour":      detail,
		"reports":     reports,
		"reportCount": len(reports),
		"users":       users,
		"verifiers":   verifiers,
	})
}

func (h Rumours) Summary(c *gin.Context) {
	all, err := h.registry.List(c)
	if err != nil {
		writeError(c, err)
		return
	}
	panicRumours, err := h.registry.ListPanic(c)
	if err != nil {
		writeError(c, err)
		return
	}

	verified := 0
	for _, r := range all {
		if r.IsVerified {
			verified++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalRumours":  len(all),
		"verifiedCount": verified,
		"panicCount":    len(panicRumours),
		"pendingCount":  len(all) - verified,
		"panicRumours":  panicRumours,
	})
}
