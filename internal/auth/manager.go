// Package auth は資格情報の検証とセッションによるアクセス制御を提供します。
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/tiny-pea/internal/config"
	"github.com/yourusername/tiny-pea/internal/session"
)

// ContextUserKey は、ハンドラー間でログイン済みメールアドレスを共有するためのキーです。
const ContextUserKey = "auth.user"

// 段階ごとのログイン失敗を表すエラーです。
// メール検証が先、パスワード検証が後という順序は画面に出すメッセージを決めるため固定です。
var (
	ErrInvalidMail     = errors.New("submitted mail does not match")
	ErrInvalidPassword = errors.New("submitted password does not match")
)

const (
	msgInvalidMail     = "Invalid User Email"
	msgInvalidPassword = "Invalid User Password"
)

// Manager は認証処理をまとめた構造体です。
type Manager struct {
	cfg   *config.Config
	store session.Store
}

// NewManager は認証マネージャーを作成します。
func NewManager(cfg *config.Config, store session.Store) *Manager {
	return &Manager{
		cfg:   cfg,
		store: store,
	}
}

// IsAuthenticated はセッションに保存されたメールアドレスが期待値と完全一致するかを返します。
func (m *Manager) IsAuthenticated(c *gin.Context) bool {
	mail, ok := m.store.Get(c)
	return ok && mail == m.cfg.Mail
}

// Authenticate は送信された資格情報を検証します。
// メールが一致しなければ ErrInvalidMail、パスワードが一致しなければ ErrInvalidPassword を返します。
func (m *Manager) Authenticate(mail, passwd string) error {
	if subtle.ConstantTimeCompare([]byte(mail), []byte(m.cfg.Mail)) != 1 {
		return ErrInvalidMail
	}
	if !m.verifyPassword(passwd) {
		return ErrInvalidPassword
	}
	return nil
}

// verifyPassword は設定値がbcryptハッシュの場合はbcryptで、平文の場合は一定時間比較で検証します。
func (m *Manager) verifyPassword(passwd string) bool {
	if isBcryptHash(m.cfg.Passwd) {
		return bcrypt.CompareHashAndPassword([]byte(m.cfg.Passwd), []byte(passwd)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(passwd), []byte(m.cfg.Passwd)) == 1
}

func isBcryptHash(v string) bool {
	return strings.HasPrefix(v, "$2a$") ||
		strings.HasPrefix(v, "$2b$") ||
		strings.HasPrefix(v, "$2y$")
}

// ToastMessage はログイン失敗エラーを画面に表示する文言へ変換します。
func ToastMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidMail):
		return msgInvalidMail
	case errors.Is(err, ErrInvalidPassword):
		return msgInvalidPassword
	default:
		return ""
	}
}

// RequireLogin は未ログインのリクエストをログインページへ誘導するミドルウェアを返します。
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.IsAuthenticated(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		mail, _ := m.store.Get(c)
		c.Set(ContextUserKey, mail)
		c.Next()
	}
}
