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

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/config"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/api/handler"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/api/router"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/database"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/jwt"
	applogger "github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/logger"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/mailer"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/redis"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ロガーの初期化に失敗: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("アプリケーション起動中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. データベース接続
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	logger.Info("データベース接続完了")

	// 3.1 マイグレーション実行
	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// 4. Redis 接続（任意：失敗してもトークン失効・レート制限なしで継続する）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 接続に失敗。トークン失効とレート制限は無効になります", zap.Error(err))
		rdb = nil
	}

	// 5. JWT マネージャー
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. メール送信
	mail := mailer.New(&cfg.Mail, logger)

	// 7. 依存注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, mail, logger)
	h := handler.NewHandler(svc)

	// 8. ルーター初期化
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. HTTP サーバー起動（グレースフルシャットダウン付き）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP サーバー起動完了", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP サーバー異常終了", zap.Error(err))
		}
	}()

	// 10. シグナル待機と終了処理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("終了シグナルを受信。シャットダウンを開始します...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("サーバー終了処理に失敗", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("サーバーを停止しました")
}
