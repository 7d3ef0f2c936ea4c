package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"meal-planner/internal/api/handlers/health"
	planHandler "meal-planner/internal/api/handlers/plan"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/core/cache"
	planService "meal-planner/internal/core/service"
	"meal-planner/internal/core/upstream"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB，純 JSON 請求用不到更大)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("upstream_enabled", cfg.Upstream.Enabled),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化遠端存儲
	remoteStore, err := cache.NewService(cfg)
	if err != nil {
		common.LogError("Failed to initialize remote store", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize remote store: %w", err)
	}

	// 初始化上游客戶端
	client := upstream.NewClient(cfg)

	// 初始化計畫服務
	svc := planService.NewService(cfg, cacheManager, remoteStore, client)
	if svc == nil {
		common.LogError("Failed to initialize plan service")
		return nil, fmt.Errorf("failed to initialize plan service")
	}

	common.LogInfo("Plan service initialized successfully",
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置與快取層（health 檢查用）
		c.Set("config", cfg)
		c.Set("cache_manager", cacheManager)
		c.Set("plan_service", svc)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := planHandler.NewHandler(svc)

		planGroup := api.Group("/plan")
		{
			// 生成／換餐是寫入操作，掛去重與限流
			writes := planGroup.Group("")
			writes.Use(middleware.Deduplication(cfg))
			if cfg.RateLimit.Enabled {
				writes.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
			}
			{
				writes.POST("/generate", handler.HandleGenerate)
				writes.POST("/ai", handler.HandleAIGenerate)
				writes.POST("/swap", handler.HandleSwap)
				writes.POST("/grocery/check", handler.HandleCheckItem)
			}

			// 讀取操作
			planGroup.GET("", handler.HandleGetPlan)
			planGroup.GET("/grocery", handler.HandleGroceryList)
			planGroup.GET("/shopping", handler.HandleShoppingList)
			planGroup.GET("/summary", handler.HandleSummary)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
