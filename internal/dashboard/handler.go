// Package dashboard はログイン後に表示するダッシュボード画面を提供します。
package dashboard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/tiny-pea/internal/auth"
)

// Page は GET,POST /dashboard のハンドラーです。
// auth.Manager.RequireLogin の後段で実行される前提で、コンテキストからメールアドレスを読みます。
func Page(c *gin.Context) {
	mail := c.GetString(auth.ContextUserKey)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"avtr": avatarInitials(mail),
	})
}

// avatarInitials はメールアドレスの先頭2文字を大文字化して返します。
// 2文字に満たない場合はある分だけを返します（詰め物はしない）。
func avatarInitials(mail string) string {
	runes := []rune(mail)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
