// Package main はダッシュボードサーバーのエントリーポイントです。
package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/tiny-pea/internal/auth"
	"github.com/yourusername/tiny-pea/internal/config"
	"github.com/yourusername/tiny-pea/internal/dashboard"
	"github.com/yourusername/tiny-pea/internal/session"
)

func main() {
	// 設定の読み込み。MAIL / PASSWD が無ければここで終了する。
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Env variable not found: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()
	router.Use(requestIDMiddleware())

	// セッションストアの選択。Redis URLが設定されていればサーバー側保存に切り替える。
	store, err := setupSessionStore(router, cfg)
	if err != nil {
		log.Fatalf("Failed to set up session store: %v", err)
	}

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// テンプレートの読み込み
	router.LoadHTMLGlob(cfg.TemplatesGlob)

	// ルーティングの設定
	setupRoutes(router, cfg, store)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting dashboard server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupSessionStore はセッションバックエンドを構築します。
// クッキーバックエンドの場合のみ sessions ミドルウェアをルーターへ登録します。
func setupSessionStore(router *gin.Engine, cfg *config.Config) (session.Store, error) {
	secure := cfg.GinMode == gin.ReleaseMode
	maxAge := time.Duration(cfg.SessionMaxAgeMinutes) * time.Minute

	if cfg.SessionRedisURL != "" {
		opt, err := redis.ParseURL(cfg.SessionRedisURL)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(redis.NewClient(opt), maxAge, secure), nil
	}

	if cfg.SessionSecret == "" {
		log.Printf("Warning: SECRET is not set, session cookies are signed with an empty key")
	}

	cookieStore := cookie.NewStore([]byte(cfg.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	router.Use(sessions.Sessions(session.CookieName, cookieStore))
	return session.NewCookieStore(), nil
}

// handleHome は GET / のハンドラーです。
func handleHome(c *gin.Context) {
	c.String(http.StatusOK, "hello i am a tiny pea!!!")
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tiny-pea",
		"version": "0.1.0",
	})
}

// requestIDMiddleware は各リクエストへUUIDを割り当て、レスポンスヘッダーで返します。
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// setupRoutes はページと認証周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, store session.Store) {
	router.GET("/", handleHome)
	router.GET("/health", handleHealth)

	authManager := auth.NewManager(cfg, store)
	router.GET("/login", authManager.LoginPage)
	router.POST("/login", authManager.Login)
	router.GET("/logout", authManager.Logout)

	protected := router.Group("/dashboard")
	protected.Use(authManager.RequireLogin())
	{
		protected.GET("", dashboard.Page)
		protected.POST("", dashboard.Page)
	}
}
