package middleware

import (
	"time"

	"user-center/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS 跨域中间件
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.CORS.AllowMethods,
		AllowHeaders:     cfg.CORS.AllowHeaders,
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}

	// 携带 Cookie 时不能使用通配符, 按请求来源回写
	allowAll := false
	for _, origin := range cfg.CORS.Origins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	switch {
	case allowAll && cfg.CORS.AllowCredentials:
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	case allowAll:
		corsConfig.AllowAllOrigins = true
	case len(cfg.CORS.Origins) > 0:
		corsConfig.AllowOrigins = cfg.CORS.Origins
	default:
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(corsConfig)
}
