package app

import (
	"elearning_backend/docs"
	"elearning_backend/internal/config"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/monitoring"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	base := strings.TrimSuffix(cfg.Server.BasePath, "/")

	docs.SwaggerInfo.BasePath = base + "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group(base + "/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 用户进度
		api.GET("/user", c.user.GetUser)
		api.POST("/user/:userId/update", c.user.UpdateProgress)

		// 测验
		api.GET("/quiz/:quizId", c.quiz.GetQuiz)
		api.POST("/quiz/:quizId/submit", c.quiz.SubmitQuiz)

		// 合格通知
		api.POST("/notify-discord", c.notification.NotifyPass)

		// 目录
		api.GET("/learning-materials", c.learning.ListMaterials)
		api.GET("/tests", c.learning.ListTests)
	}

	router.NoRoute(staticHandler(base, cfg.Content.PublicDir))
}

// staticHandler 在 base 路径下提供静态页面。
// gin 的 Static 会与同前缀的 API 路由冲突，所以挂在 NoRoute 上。
func staticHandler(base, publicDir string) gin.HandlerFunc {
	fileServer := http.StripPrefix(base, http.FileServer(http.Dir(publicDir)))
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		isGet := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if isGet && (path == base || strings.HasPrefix(path, base+"/")) && !strings.HasPrefix(path, base+"/api/") {
			fileServer.ServeHTTP(c.Writer, c.Request)
			return
		}
		util.NotFound(c, "Sorry, that page doesn't exist.")
	}
}
