package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pixelforge/internal/config"
	"pixelforge/internal/models"
	"pixelforge/internal/repository"
	"pixelforge/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// deadSessionStore returns a store whose backend refuses connections, so
// every token resolves as invalid.
func deadSessionStore() *session.Store {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	return session.NewStore(rdb, time.Minute)
}

func TestSessionAuthClearsCookieWithConfiguredAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sc := config.SessionConfig{CookieName: "pixelforge_session", SecureCookies: true}

	r := gin.New()
	r.Use(SessionAuth(deadSessionStore(), repository.NewUserRepository(db), sc))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/?tab=docs", nil)
	req.AddCookie(&http.Cookie{Name: sc.CookieName, Value: "stale-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login?next=") {
		t.Errorf("Location = %q, want a /login?next= redirect", loc)
	}

	var cleared string
	for _, h := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(h, sc.CookieName+"=") {
			cleared = h
		}
	}
	if cleared == "" {
		t.Fatal("stale session cookie must be cleared")
	}
	if !strings.Contains(cleared, "Secure") {
		t.Error("cleared cookie must carry the configured Secure attribute")
	}
	if !strings.Contains(cleared, "Max-Age=0") {
		t.Error("cleared cookie must expire immediately")
	}
}
