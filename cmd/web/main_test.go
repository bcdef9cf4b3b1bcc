package main

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/tiny-pea/internal/config"
	"github.com/yourusername/tiny-pea/internal/session"
)

// client はクッキーを持ち回りながらテストルーターへリクエストを送ります。
type client struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Mail:   "a@b.com",
		Passwd: "secret123",
	}

	router := gin.New()
	router.Use(sessions.Sessions(session.CookieName, cookie.NewStore([]byte("test-secret"))))
	router.SetHTMLTemplate(template.Must(template.New("").Parse(
		`{{define "login.html"}}showToast={{.showToast}} type={{.type}} msg={{.msg}}{{end}}` +
			`{{define "dashboard.html"}}avtr={{.avtr}}{{end}}`,
	)))
	setupRoutes(router, cfg, session.NewCookieStore())

	return &client{router: router}
}

func (cl *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	cl.router.ServeHTTP(rec, req)

	if updated := rec.Result().Cookies(); len(updated) > 0 {
		cl.cookies = updated
	}
	return rec
}

func (cl *client) login(mail, passwd string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("usr-email", mail)
	form.Set("usr-passwd", passwd)
	return cl.do(http.MethodPost, "/login", form)
}

func TestHome(t *testing.T) {
	cl := newTestApp(t)

	rec := cl.do(http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "hello i am a tiny pea!!!" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	cl := newTestApp(t)

	rec := cl.do(http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestDashboardRequiresLogin(t *testing.T) {
	cl := newTestApp(t)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := cl.do(method, "/dashboard", nil)
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
			t.Fatalf("%s /dashboard: status=%d location=%q", method, rec.Code, rec.Header().Get("Location"))
		}
	}
}

// ログイン失敗→成功→ダッシュボード表示→ログアウトの一連の流れを検証します。
func TestLoginFlow(t *testing.T) {
	cl := newTestApp(t)

	rec := cl.login("a@b.com", "wrong")
	if rec.Code != http.StatusOK {
		t.Fatalf("failed login: status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid User Password") {
		t.Fatalf("failed login body = %q", rec.Body.String())
	}

	rec = cl.do(http.MethodGet, "/dashboard", nil)
	if rec.Code != http.StatusFound {
		t.Fatal("failed login must not open the dashboard")
	}

	rec = cl.login("a@b.com", "secret123")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("login: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = cl.do(http.MethodGet, "/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "avtr=A@" {
		t.Fatalf("dashboard body = %q, want avtr=A@", rec.Body.String())
	}

	// ログイン済みの /login は GET も POST もダッシュボードへ戻す
	rec = cl.do(http.MethodGet, "/login", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("GET /login while authenticated: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
	rec = cl.login("other@b.com", "whatever")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("POST /login while authenticated: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = cl.do(http.MethodGet, "/logout", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("logout: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = cl.do(http.MethodGet, "/dashboard", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("dashboard after logout: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginWrongMailToast(t *testing.T) {
	cl := newTestApp(t)

	rec := cl.login("wrong@b.com", "secret123")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid User Email") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestLogoutAnonymous(t *testing.T) {
	cl := newTestApp(t)

	rec := cl.do(http.MethodGet, "/logout", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(requestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("X-Request-ID header was not set")
	}

	// クライアントが指定したIDはそのまま通す
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("X-Request-ID = %q, want fixed-id", got)
	}
}
