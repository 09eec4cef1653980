package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/shared/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return env
}

func authRig(t *testing.T) (*MemoryRepo, *auth.TokenIssuer, *gin.Engine) {
	t.Helper()
	repo := NewMemoryRepo()
	tokens := auth.NewTokenIssuer("test-secret")
	r := gin.New()
	r.GET("/protected", Authenticate(repo, tokens), func(c *gin.Context) {
		user, _ := FromContext(c)
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": user.Email})
	})
	return repo, tokens, r
}

func TestAuthenticate(t *testing.T) {
	repo, tokens, r := authRig(t)
	user := seedUser(t, repo, "alice@example.com", "alicepass", true)
	token, err := tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Message != "alice@example.com" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	repo, tokens, r := authRig(t)
	active := seedUser(t, repo, "alice@example.com", "alicepass", true)
	inactive := seedUser(t, repo, "gone@example.com", "gonepass1", false)

	activeToken, _ := tokens.Issue(active.ID, string(active.Role))
	inactiveToken, _ := tokens.Issue(inactive.ID, string(inactive.Role))
	orphanToken, _ := tokens.Issue("no-such-user", "admin")
	foreignToken, _ := auth.NewTokenIssuer("other-secret").Issue(active.ID, string(active.Role))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + foreignToken},
		{"deleted user", "Bearer " + orphanToken},
		{"deactivated user", "Bearer " + inactiveToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("code = %d, want 401", w.Code)
			}
		})
	}

	// Sanity: the active token still passes.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+activeToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("active token code = %d, want 200", w.Code)
	}
}

func TestRequireCapability(t *testing.T) {
	r := gin.New()
	inject := func(u User) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set(ctxUserKey, u) }
	}
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "success"}) }

	admin := User{ID: "a1", Role: RoleAdmin, Permissions: Permissions{ManageCompanies: true}, IsActive: true}
	super := User{ID: "s1", Role: RoleSuperAdmin, IsActive: true}

	r.GET("/companies-as-admin", inject(admin), RequireCapability(CapManageCompanies), ok)
	r.GET("/jobs-as-admin", inject(admin), RequireCapability(CapManageJobs), ok)
	r.GET("/jobs-as-super", inject(super), RequireCapability(CapManageJobs), ok)
	r.GET("/no-user", RequireCapability(CapManageJobs), ok)

	cases := []struct {
		path string
		code int
	}{
		{"/companies-as-admin", http.StatusOK},
		{"/jobs-as-admin", http.StatusForbidden},
		{"/jobs-as-super", http.StatusOK},
		{"/no-user", http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.code {
			t.Fatalf("%s: code = %d, want %d", tc.path, w.Code, tc.code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	admin := User{ID: "a1", Role: RoleAdmin, IsActive: true}
	r.GET("/super-only", func(c *gin.Context) { c.Set(ctxUserKey, admin) }, RequireRole(RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/super-only", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Message != "You do not have permission to perform this action" {
		t.Fatalf("message = %q", env.Message)
	}
}

