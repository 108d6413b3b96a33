package router

import (
	"github.com/gin-gonic/gin"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
	"github.com/henryadie/EduVest-Protocol/internal/handler"
	"github.com/henryadie/EduVest-Protocol/internal/task"
)

func Setup(eng *engine.Engine, recorder *task.Recorder) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "eduvest-protocol",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		projectHandler := handler.NewProjectHandler(eng, recorder)
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("/:id/invest", projectHandler.Invest)
			projects.POST("/:id/withdraw", projectHandler.Withdraw)
			projects.POST("/:id/refund", projectHandler.Refund)
			projects.GET("/:id/investments/:address", projectHandler.GetInvestment)
		}

		// 平台相关路由
		platformHandler := handler.NewPlatformHandler(eng)
		platform := v1.Group("/platform")
		{
			platform.GET("/fee", platformHandler.GetFee)
			platform.POST("/fee", platformHandler.SetFee)
			platform.POST("/admin", platformHandler.SetAdmin)
			platform.GET("/projects/count", platformHandler.GetProjectCount)
			platform.GET("/height", platformHandler.GetHeight)
		}

		v1.GET("/investors/:address", platformHandler.GetInvestor)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
