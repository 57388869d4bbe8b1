package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/social-watch/rumour-tracker/src/api/data"
	"github.com/social-watch/rumour-tracker/src/api/report"
	"github.com/social-watch/rumour-tracker/src/api/rumour"
	"github.com/social-watch/rumour-tracker/src/api/types"
	"github.com/social-watch/rumour-tracker/src/api/user"
)

// Reports handles report submission: the guarded insert, credibility
// recomputation and the panic escalation check, in that order.
type Reports struct {
	db        *gorm.DB
	rdb       *redis.Client
	threshold int
}

func NewReports(db *gorm.DB, rdb *redis.Client, threshold int) Reports {
	return Reports{db: db, rdb: rdb, threshold: threshold}
}

func (h Reports) Create(c *gin.Context) {
	rumourID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad rumour id"})
		return
	}

	var req struct {
		UserID     uint64 `json:"userId" binding:"required"`
		ReportType string `json:"reportType" binding:"required,oneof=distortion incitement falsehood credible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var (
		reportID  uint64
		score     float64
		escalated bool
	)
	err = h.db.Transaction(func(tx *gorm.DB) error {
		registry := rumour.NewRegistry(tx)
		ledger := report.NewLedger(tx)
		users := user.NewDirectory(tx)

		rum, err := registry.Get(c, rumourID)
		if err != nil {
			return err
		}
		if _, err := users.Get(c, req.UserID); err != nil {
			return err
		}
		if rum.IsVerified {
			return types.ErrAlreadyVerified
		}
		if dup, err := ledger.HasReported(c, req.UserID, rumourID); err != nil {
			return err
		} else if dup {
			return types.ErrDuplicateReport
		}

		if reportID, err = ledger.Submit(c, req.UserID, rumourID, req.ReportType); err != nil {
			return err
		}
		if score, err = registry.RecomputeCredibility(c, rumourID); err != nil {
			return err
		}

		n, err := ledger.CountFor(c, rumourID)
		if err != nil {
			return err
		}
		if n >= int64(h.threshold) && rum.Status == types.StatusNormal {
			if err := registry.EscalateToPanic(c, rumourID); err != nil {
				return err
			}
			escalated = true
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if err := data.PublishReportEvent(c, h.rdb, map[string]interface{}{
		"rumour_id":   rumourID,
		"user_id":     req.UserID,
		"report_type": req.ReportType,
		"credibility": score,
		"panic":       escalated,
	}); err != nil {
		// event feed is best effort, never fail the submission over it
		log.Printf("publish report event: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"reportId":         reportID,
		"credibilityScore": score,
		"panic":            escalated,
	})
}
