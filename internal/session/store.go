// Package session はログイン状態を保持するセッションストアを提供します。
// 保持する値は user-mail の一つだけで、検証済みのメールアドレス以外は決して書き込まれません。
package session

import (
	"github.com/gin-gonic/gin"
)

const (
	// CookieName はクッキーバックエンドで使用するセッションクッキー名です。
	CookieName = "tp_session"

	// keyUserMail はセッション内で唯一使用する論理キーです。
	keyUserMail = "user-mail"
)

// Store はリクエストごとのセッション読み書きを抽象化します。
// ハンドラーには必ずこのインターフェース経由で渡し、クッキーの実装詳細を漏らしません。
type Store interface {
	// Get は保存済みのメールアドレスを返します。未ログインの場合は ok=false です。
	Get(c *gin.Context) (mail string, ok bool)
	// Set は検証済みのメールアドレスを保存します。
	Set(c *gin.Context, mail string) error
	// Clear は user-mail を削除します。未設定でもエラーにしません（冪等）。
	Clear(c *gin.Context) error
}
