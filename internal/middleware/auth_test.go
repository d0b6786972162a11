package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/healthify-app/healthify-api/internal/models"
	"github.com/healthify-app/healthify-api/internal/token"
)

func newGatedRouter(issuer *token.Issuer, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := []gin.HandlerFunc{AuthMiddleware(issuer, false)}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		id, role, _ := Identity(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	r.GET("/secure", chain...)
	return r
}

func request(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: token.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGateMissingCookie(t *testing.T) {
	r := newGatedRouter(token.NewIssuer("secret"))

	w := request(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthGateInvalidTokenClearsCookie(t *testing.T) {
	r := newGatedRouter(token.NewIssuer("secret"))

	w := request(r, "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, token.CookieName+"=") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Errorf("invalid token must clear the cookie, got %q", setCookie)
	}
}

func TestAuthGateValidToken(t *testing.T) {
	issuer := token.NewIssuer("secret")
	r := newGatedRouter(issuer)

	raw, err := issuer.Issue(7, models.RolePatient)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := request(r, raw)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRoleGate(t *testing.T) {
	issuer := token.NewIssuer("secret")
	r := newGatedRouter(issuer, models.RoleAdmin)

	patient, _ := issuer.Issue(1, models.RolePatient)
	admin, _ := issuer.Issue(2, models.RoleAdmin)

	if w := request(r, patient); w.Code != http.StatusForbidden {
		t.Errorf("patient status = %d, want 403", w.Code)
	}
	if w := request(r, admin); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

func TestRoleGateWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := request(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
