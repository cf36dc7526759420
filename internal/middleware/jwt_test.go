package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/octobees/sitegen/internal/auth"
)

func expiredToken(t *testing.T, secret string) string {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sitegen",
			Subject:   "owner@glow.example",
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
		Role: auth.RoleAdmin,
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJWTMiddleware(t *testing.T) {
	e := echo.New()
	manager := auth.NewJWTManager("secret", 0)

	token, err := manager.GenerateToken("owner@glow.example", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	foreign, err := auth.NewJWTManager("other-secret", 0).GenerateToken("owner@glow.example", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := map[string]struct {
		header        string
		expectCode    int
		expectMessage string
	}{
		"missing header": {
			expectCode:    http.StatusUnauthorized,
			expectMessage: "bearer token required",
		},
		"basic scheme": {
			header:        "Basic b3duZXI6cGFzcw==",
			expectCode:    http.StatusUnauthorized,
			expectMessage: "bearer token required",
		},
		"empty bearer": {
			header:        "Bearer  ",
			expectCode:    http.StatusUnauthorized,
			expectMessage: "bearer token required",
		},
		"garbage token": {
			header:        "Bearer invalid",
			expectCode:    http.StatusUnauthorized,
			expectMessage: "invalid token",
		},
		"signed by another secret": {
			header:        "Bearer " + foreign,
			expectCode:    http.StatusUnauthorized,
			expectMessage: "invalid token",
		},
		"expired": {
			header:        "Bearer " + expiredToken(t, "secret"),
			expectCode:    http.StatusUnauthorized,
			expectMessage: "token expired, mint a new one",
		},
		"success": {
			header:     "bearer " + token,
			expectCode: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			executed := false
			err := JWT(manager)(func(c echo.Context) error {
				executed = true
				if c.Get(ContextKeySubject) != "owner@glow.example" || c.Get(ContextKeyRole) != auth.RoleAdmin {
					t.Fatalf("expected subject and role in context")
				}
				return c.NoContent(http.StatusOK)
			})(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectCode == http.StatusOK {
				if !executed {
					t.Fatalf("expected next handler to be executed")
				}
				return
			}
			if executed || rec.Code != tt.expectCode {
				t.Fatalf("expected status %d without reaching the handler, got %d", tt.expectCode, rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != bearerChallenge {
				t.Fatalf("expected bearer challenge, got %q", got)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["status"] != "error" || body["message"] != tt.expectMessage {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestLeadInboxRequiresAdminToken(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	e := echo.New()
	e.GET("/admin/leads", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, JWT(manager), RequireRole(auth.RoleAdmin))

	editor, err := manager.GenerateToken("front-desk@glow.example", "editor")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	admin, err := manager.GenerateToken("owner@glow.example", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := map[string]struct {
		token         string
		expectCode    int
		expectMessage string
	}{
		"editor token": {
			token:         editor,
			expectCode:    http.StatusForbidden,
			expectMessage: "role editor cannot access this resource",
		},
		"admin token": {
			token:      admin,
			expectCode: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if tt.expectMessage == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["message"] != tt.expectMessage {
				t.Fatalf("unexpected message %q", body["message"])
			}
		})
	}
}
