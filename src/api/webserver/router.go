package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/social-watch/rumour-tracker/src/api/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))
	r.Use(requestID())

	rumourH := NewRumours(db)
	reportH := NewReports(db, rdb, cfg.PanicThreshold)
	verifyH := NewVerifications(db)
	adminH := NewAdmin(db)

	v1 := r.Group("/v1")
	{
		v1.GET("/rumours", rumourH.List)
		v1.GET("/rumours/:id", rumourH.Detail)
		v1.GET("/summary", rumourH.Summary)
		v1.POST("/rumours/:id/reports", reportH.Create)
		v1.POST("/rumours/:id/verify", verifyH.Create)
	}

	admin := v1.Group("/admin")
	{
		admin.POST("/rumours", adminH.CreateRumour)
		admin.POST("/users", adminH.CreateUser)
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
