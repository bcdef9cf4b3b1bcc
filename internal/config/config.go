// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
// 起動時に一度だけ構築し、以降は読み取り専用として扱います。
type Config struct {
	// 認証設定
	Mail          string // ログインを許可する唯一のメールアドレス
	Passwd        string // 期待するパスワード（$2a$ 等で始まる場合は bcrypt ハッシュとして扱う）
	SessionSecret string // セッションクッキー署名用の秘密鍵

	// サーバー設定
	Port    string // HTTPサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// セッション設定
	SessionRedisURL      string // 空でなければRedisバックエンドのセッションを使用
	SessionMaxAgeMinutes int    // クッキーMaxAge / RedisレコードTTL（分）

	// テンプレート設定
	TemplatesGlob string // HTMLテンプレートの読み込みパターン

	// nginx設定ファイル管理
	NginxDir  string // 有効なconfの置き場所
	BackupDir string // 無効化したconfの退避先
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	loadEnvFile()

	config := &Config{
		Mail:          getEnv("MAIL", ""),
		Passwd:        getEnv("PASSWD", ""),
		SessionSecret: getEnv("SECRET", ""),

		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		SessionRedisURL:      getEnv("SESSION_REDIS_URL", ""),
		SessionMaxAgeMinutes: getEnvAsInt("SESSION_MAX_AGE_MINUTES", 720),

		TemplatesGlob: getEnv("TEMPLATES_GLOB", "web/templates/*.html"),

		NginxDir:  getEnv("NGINX_DIR", "/etc/nginx/conf.d"),
		BackupDir: getEnv("BACKUP_DIR", "/home/manager-bkp"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// MAIL と PASSWD はどのモードでも必須です。SECRET は署名強度が落ちるだけなので必須にはしません。
func (c *Config) Validate() error {
	if c.Mail == "" {
		return fmt.Errorf("MAIL is required")
	}
	if c.Passwd == "" {
		return fmt.Errorf("PASSWD is required")
	}
	return nil
}

// LoadDirs は conf 管理ツールが使用するディレクトリ設定だけを読み込みます。
// 認証用の環境変数は要求しません。
func LoadDirs() (nginxDir string, backupDir string) {
	loadEnvFile()
	return getEnv("NGINX_DIR", "/etc/nginx/conf.d"), getEnv("BACKUP_DIR", "/home/manager-bkp")
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
