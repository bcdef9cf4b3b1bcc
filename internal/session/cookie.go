package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieStore は gin-contrib/sessions の署名付きクッキーに user-mail を保存します。
// sessions.Sessions ミドルウェアが登録されているルーターでのみ使用できます。
type CookieStore struct{}

// NewCookieStore は CookieStore を作成します。
func NewCookieStore() *CookieStore {
	return &CookieStore{}
}

// Get は保存済みのメールアドレスを返します。
func (s *CookieStore) Get(c *gin.Context) (string, bool) {
	sess := sessions.Default(c)
	mail, ok := sess.Get(keyUserMail).(string)
	if !ok || mail == "" {
		return "", false
	}
	return mail, true
}

// Set はメールアドレスをセッションに書き込みます。
func (s *CookieStore) Set(c *gin.Context, mail string) error {
	sess := sessions.Default(c)
	sess.Set(keyUserMail, mail)
	return sess.Save()
}

// Clear は user-mail を削除します。
func (s *CookieStore) Clear(c *gin.Context) error {
	sess := sessions.Default(c)
	if _, ok := sess.Get(keyUserMail).(string); !ok {
		return nil
	}
	sess.Delete(keyUserMail)
	return sess.Save()
}
