package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// フォームのフィールド名はログインテンプレートと揃えています。
const (
	formFieldMail   = "usr-email"
	formFieldPasswd = "usr-passwd"
)

// LoginPage は GET /login のハンドラーです。
// ログイン済みの場合はダッシュボードへリダイレクトします。
func (m *Manager) LoginPage(c *gin.Context) {
	if m.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"showToast": false,
		"type":      "",
		"msg":       "",
	})
}

// Login は POST /login のハンドラーです。
// ログイン済みの場合は送信内容を無視してダッシュボードへリダイレクトします。
func (m *Manager) Login(c *gin.Context) {
	if m.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	mail := c.PostForm(formFieldMail)
	passwd := c.PostForm(formFieldPasswd)

	if err := m.Authenticate(mail, passwd); err != nil {
		// 失敗はトースト付きの200で返す。ステータスで失敗段階を区別しない。
		c.HTML(http.StatusOK, "login.html", gin.H{
			"showToast": true,
			"type":      "error",
			"msg":       ToastMessage(err),
		})
		return
	}

	if err := m.store.Set(c, mail); err != nil {
		c.String(http.StatusInternalServerError, "failed to save session")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout は GET /logout のハンドラーです。
// 未ログインでも何もせずホームへ戻るだけでエラーにはしません。
func (m *Manager) Logout(c *gin.Context) {
	if !m.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := m.store.Clear(c); err != nil {
		c.String(http.StatusInternalServerError, "failed to clear session")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
