package webserver

import (
	"errors"
	"html"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/social-watch/rumour-tracker/src/api/types"
)

// Admin is the intake seam for the entities the write flows never create:
// rumours and users.
type Admin struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

func NewAdmin(db *gorm.DB) Admin {
	sanitizer := bluemonday.StrictPolicy()
	return Admin{db: db, sanitizer: sanitizer}
}

func (h Admin) CreateRumour(c *gin.Context) {
	var req struct {
		RumourID uint64 `json:"rumourId" binding:"required,min=10000000,max=99999999"`
		Title    string `json:"title" binding:"required,max=255"`
		Content  string `json:"content" binding:"max=10000"`
		Source   string `json:"source" binding:"required,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	rum := types.Rumour{
		RumourID:    req.RumourID,
		Title:       html.EscapeString(req.Title),
		Content:     h.sanitizer.Sanitize(req.Content),
		Source:      req.Source,
		CreatedDate: time.Now(),
		Status:      types.StatusNormal,
	}
	if err := h.db.Create(&rum).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"err": "rumour already exists"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rum)
}

func (h Admin) CreateUser(c *gin.Context) {
	var req struct {
		Username     string `json:"username" binding:"required,max=64"`
		Name         string `json:"name" binding:"required,max=128"`
		Role         string `json:"role" binding:"required,oneof=general verifier"`
		VerifierCode string `json:"verifierCode" binding:"max=16"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	// verifier code present iff the role is verifier
	if req.Role == types.RoleVerifier && req.VerifierCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "verifier requires a verifier code"})
		return
	}
	if req.Role == types.RoleGeneral && req.VerifierCode != "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "general users cannot carry a verifier code"})
		return
	}

	u := types.User{
		Username:     req.Username,
		Name:         req.Name,
		Role:         req.Role,
		VerifierCode: req.VerifierCode,
	}
	if err := h.db.Create(&u).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}
