package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("s3cret", string(hash)) {
		t.Error("expected matching password to pass")
	}
	if CheckPasswordHash("wrong", string(hash)) {
		t.Error("expected wrong password to fail")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	if _, err := GenerateToken("admin@example.com", "", time.Hour); err == nil {
		t.Fatal("expected error without secret")
	}
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	r := gin.New()
	r.GET("/private", AuthMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("adminId"))
	})

	valid, err := GenerateToken("admin@example.com", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := GenerateToken("admin@example.com", secret, -time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := GenerateToken("admin@example.com", "other-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"valid bearer", "Bearer " + valid, http.StatusOK},
		{"valid raw token", valid, http.StatusOK},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusOK && w.Body.String() != "admin@example.com" {
				t.Fatalf("adminId = %q", w.Body.String())
			}
		})
	}
}
