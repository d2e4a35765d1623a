package router

import (
	"net/http"

	"user-center/internal/config"
	"user-center/internal/handler"
	"user-center/internal/middleware"
	"user-center/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	store sessions.Store,
	userService *service.UserService,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Metrics())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userHandler := handler.NewUserHandler(userService)
	adminRequired := middleware.AdminRequired(userService)

	api := r.Group(cfg.Server.ContextPath)
	api.Use(sessions.Sessions(cfg.Session.CookieName, store))
	api.Use(middleware.LoginState(logger))

	user := api.Group("/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/login", userHandler.Login)
		user.GET("/current", userHandler.Current)
		user.POST("/logout", userHandler.Logout)
		user.GET("/recommend", userHandler.Recommend)
		user.GET("/search/tags", userHandler.SearchByTags)
		user.POST("/update", userHandler.Update)

		// 管理员接口
		user.GET("/search", adminRequired, userHandler.Search)
		user.POST("/delete", adminRequired, userHandler.Delete)
		user.POST("/restore", adminRequired, userHandler.Restore)
	}

	return r
}
