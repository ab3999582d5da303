package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Rodi229/Soft-Project/config"
	"github.com/Rodi229/Soft-Project/internal/api/handler"
	"github.com/Rodi229/Soft-Project/internal/api/router"
	"github.com/Rodi229/Soft-Project/internal/service"
	"github.com/Rodi229/Soft-Project/internal/store"
	"github.com/Rodi229/Soft-Project/pkg/jwt"
	applogger "github.com/Rodi229/Soft-Project/pkg/logger"
	"github.com/Rodi229/Soft-Project/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis
	// storage.driver=redis 时为必需；其他驱动下连接失败降级运行（仅失去 Token 黑名单与限流）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		if cfg.Storage.Driver == "redis" {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
		logger.Warn("Redis 连接失败，Token 黑名单功能将不可用", zap.Error(err))
		rdb = nil
	}

	// 4. 初始化申请人记录存储
	st, err := newStore(cfg, rdb, logger)
	if err != nil {
		logger.Fatal("初始化存储失败", zap.Error(err))
	}
	logger.Info("存储初始化成功", zap.String("driver", cfg.Storage.Driver))

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 依赖注入: Store → Service → Handler
	svc, err := service.NewService(cfg, st, jwtMgr, rdb, logger)
	if err != nil {
		logger.Fatal("初始化 Service 失败", zap.Error(err))
	}
	h := handler.NewHandler(svc)

	// 6.1 首次运行演示数据
	if cfg.Feature.SeedSampleData {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := svc.Seed.SeedIfEmpty(ctx); err != nil {
			logger.Warn("写入演示数据失败", zap.Error(err))
		}
		cancel()
	}

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// newStore 按配置选择存储驱动
func newStore(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (store.Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Storage.DataDir, logger)
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("storage.driver=redis 需要可用的 Redis 连接")
		}
		return store.NewRedisStore(rdb, cfg.Storage.KeyPrefix, logger), nil
	default:
		return nil, fmt.Errorf("未知的存储驱动: %q", cfg.Storage.Driver)
	}
}
