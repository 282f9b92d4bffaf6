package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/app"
	"github.com/sudharsana-dev/blog-server/internal/config"
	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 初始化数据库。file 后端不需要数据库
	if cfg.Storage.Backend != constants.StorageBackendFile {
		if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		}); err != nil {
			stdLog.Fatalf("database init failed: %v", err)
		}
		if err := models.AutoMigrate(); err != nil {
			stdLog.Fatalf("database migration failed: %v", err)
		}
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("server exited: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println("blog-server starting")
}
