package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sidCookieName    = "tp_sid"
)

// Record はRedisに保存するセッション内容です。
type Record struct {
	UserMail  string    `json:"userMail"`
	CreatedAt time.Time `json:"createdAt"`
}

// RedisStore はセッションをサーバー側（Redis）に保存します。
// クライアントには署名不要の不透明なセッションIDのみを渡します。
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	secure bool
}

// NewRedisStore は RedisStore を作成します。
func NewRedisStore(rdb *redis.Client, ttl time.Duration, secure bool) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		ttl:    ttl,
		secure: secure,
	}
}

// Get は保存済みのメールアドレスを返します。
// レコードの期限切れ・欠落は未ログインとして扱います。
func (s *RedisStore) Get(c *gin.Context) (string, bool) {
	sid, err := c.Cookie(sidCookieName)
	if err != nil || sid == "" {
		return "", false
	}

	data, err := s.rdb.Get(c.Request.Context(), sessionKey(sid)).Bytes()
	if err != nil {
		return "", false
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return "", false
	}
	if record.UserMail == "" {
		return "", false
	}
	return record.UserMail, true
}

// Set はメールアドレスをRedisに書き込み、セッションIDクッキーを発行します。
func (s *RedisStore) Set(c *gin.Context, mail string) error {
	sid, err := c.Cookie(sidCookieName)
	if err != nil || sid == "" {
		sid = uuid.NewString()
	}

	payload, err := json.Marshal(&Record{
		UserMail:  mail,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := s.rdb.Set(c.Request.Context(), sessionKey(sid), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sidCookieName, sid, int(s.ttl.Seconds()), "/", "", s.secure, true)
	return nil
}

// Clear はセッションレコードを削除し、クッキーを失効させます。
func (s *RedisStore) Clear(c *gin.Context) error {
	sid, err := c.Cookie(sidCookieName)
	if err != nil || sid == "" {
		return nil
	}

	if err := s.rdb.Del(c.Request.Context(), sessionKey(sid)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sidCookieName, "", -1, "/", "", s.secure, true)
	return nil
}

func sessionKey(sid string) string {
	return sessionKeyPrefix + sid
}
