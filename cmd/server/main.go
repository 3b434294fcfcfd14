package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/config"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/api/handler"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/api/router"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/database"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/jwt"
	applogger "github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/logger"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 0. 本地开发时从 .env 注入 TSV_* 环境变量；文件不存在不是错误
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
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
		zap.String("club", cfg.Club.Name),
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)
	if cfg.Auth.TrainerPasswordHash == "" {
		logger.Warn("未配置教练口令，教练角色无法登录")
	}

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：未配置或连接失败时降级运行）
	var (
		rdb       *redis.Client
		sessions  service.SessionStore
		routeDeps router.Deps
		cache     handler.Pinger
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，会话注销与登录限流将不可用", zap.Error(err))
			rdb = nil
		}
	}
	// 只在 rdb 非 nil 时赋给接口，避免出现带类型的 nil
	if rdb != nil {
		sessions = rdb
		routeDeps = router.Deps{Blacklist: rdb, Limiter: rdb}
		cache = rdb
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 依赖注入: Repository → Service → Handler
	if err := handler.RegisterValidators(); err != nil {
		logger.Fatal("注册参数校验规则失败", zap.Error(err))
	}
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, sessions, logger)
	h := handler.NewHandler(svc, handler.HealthDeps{
		DB:    repo,
		Cache: cache,
		SchemaVersion: func(ctx context.Context) (uint, bool, error) {
			return database.SchemaVersion(ctx, sqlDB)
		},
	})

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, routeDeps, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // 远程假期日历导入最长 30s
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

	// 关闭数据库连接
	if err := sqlDB.Close(); err != nil {
		logger.Error("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
