package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AdminKey(key))
	r.POST("/process", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAdminKeyRejectsWrongKey(t *testing.T) {
	r := adminRouter("secret")
	req := httptest.NewRequest(http.MethodPost, "/process", nil)
	req.Header.Set(AdminKeyHeader, "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAdminKeyAcceptsMatchingKey(t *testing.T) {
	r := adminRouter("secret")
	req := httptest.NewRequest(http.MethodPost, "/process", nil)
	req.Header.Set(AdminKeyHeader, "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAdminKeyDisabledWhenUnset(t *testing.T) {
	r := adminRouter("")
	req := httptest.NewRequest(http.MethodPost, "/process", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
