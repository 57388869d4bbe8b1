package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/social-watch/rumour-tracker/src/api/rumour"
	"github.com/social-watch/rumour-tracker/src/api/types"
	"github.com/social-watch/rumour-tracker/src/api/user"
)

// Verifications lets a verifier close a rumour out with a verdict.
type Verifications struct{ db *gorm.DB }

func NewVerifications(db *gorm.DB) Verifications { return Verifications{db: db} }

func (h Verifications) Create(c *gin.Context) {
	rumourID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad rumour id"})
		return
	}

	var req struct {
		VerifierID uint64 `json:"verifierId" binding:"required"`
		Result     string `json:"result" binding:"required,oneof=distortion incitement falsehood credible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		registry := rumour.NewRegistry(tx)
		users := user.NewDirectory(tx)

		verifier, err := users.Get(c, req.VerifierID)
		if err != nil {
			return err
		}
		if verifier.Role != types.RoleVerifier {
			return types.ErrNotVerifier
		}

		rum, err := registry.Get(c, rumourID)
		if err != nil {
			return err
		}
		if rum.IsVerified {
			return types.ErrAlreadyVerified
		}

		return registry.Verify(c, rumourID, req.Result, req.VerifierID)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rumourId": rumourID,
		"result":   req.Result,
		"verified": true,
	})
}
