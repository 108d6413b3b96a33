package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/henryadie/EduVest-Protocol/internal/chain"
	"github.com/henryadie/EduVest-Protocol/internal/config"
	"github.com/henryadie/EduVest-Protocol/internal/database"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
	"github.com/henryadie/EduVest-Protocol/internal/ledger"
	"github.com/henryadie/EduVest-Protocol/internal/logger"
	"github.com/henryadie/EduVest-Protocol/internal/router"
	"github.com/henryadie/EduVest-Protocol/internal/scheduler"
	"github.com/henryadie/EduVest-Protocol/internal/task"
	"gorm.io/gorm"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库（可选）
	var db *gorm.DB
	if cfg.Database.Enabled {
		var err error
		db, err = database.Init(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to initialize database: %v", err)
		}
	}

	// 初始化账本
	var led engine.Ledger
	if db != nil {
		led = ledger.NewStoreLedger(db)
	} else {
		logger.Warn("Database disabled, using in-memory ledger")
		led = ledger.NewMemoryLedger()
	}

	// 初始化区块高度时钟
	var clk engine.Clock
	var chainClock *chain.ChainClock
	if cfg.Chain.Enabled {
		var err error
		chainClock, err = chain.NewChainClock(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize chain clock: %v", err)
		}
		defer chainClock.Close()
		clk = chainClock
	} else {
		logger.Warn("Chain disabled, using manual clock")
		clk = chain.NewManualClock(1)
	}

	// 初始化众筹引擎
	eng := engine.New(led, clk, cfg.Platform.AdminAddress, cfg.Platform.FeePercent)

	// 初始化流水记录器
	recorder, err := task.NewRecorder(db, 8)
	if err != nil {
		logger.Fatal("Failed to initialize recorder: %v", err)
	}
	defer recorder.Stop()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(eng, recorder)

	// 启动定时任务
	manager := scheduler.Start(eng, chainClock, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initLogger 根据配置初始化默认日志器
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	if cfg.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.File)
		if err != nil {
			log.Fatalf("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
