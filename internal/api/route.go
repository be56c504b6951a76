package api

import (
	"SMMBoard/internal/api/middleware"
	"SMMBoard/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)
	r.Use(middleware.AuditMiddleware())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		accountGroup := apiGroup.Group("/accounts")
		{
			accountGroup.GET("", group.AccountHandler.ListAccounts)
			accountGroup.POST("", group.AccountHandler.CreateAccount)
			accountGroup.GET("/:id", group.AccountHandler.GetAccount)
			accountGroup.PUT("/:id", group.AccountHandler.UpdateAccount)
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("/:id", group.PostHandler.GetPost)
			postGroup.PUT("/:id", group.PostHandler.UpdatePost)
			postGroup.DELETE("/:id", group.PostHandler.DeletePost)
			postGroup.GET("/:id/metrics", group.PostHandler.GetMetricsHistory)
		}

		ingestGroup := apiGroup.Group("/ingest")
		{
			ingestGroup.POST("/run", group.IngestHandler.RunPass)
			ingestGroup.POST("/accounts/:id", group.IngestHandler.RunAccount)
		}

		notificationGroup := apiGroup.Group("/notifications")
		{
			notificationGroup.GET("", group.SysBoxHandler.GetNotificationList)
			notificationGroup.GET("/unread", group.SysBoxHandler.GetUnreadCount)
			notificationGroup.PUT("/read", group.SysBoxHandler.MarkRead)
			notificationGroup.PUT("/read/all", group.SysBoxHandler.MarkAllRead)
		}
	}

	return r
}
