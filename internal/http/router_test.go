package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backoffice/internal/apiclient"
	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"
	"backoffice/internal/session"

	"github.com/gin-gonic/gin"
)

// upstream answers login for "admin" and "sale" and serves a staff list.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Account string `json:"taikhoan"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Account == "clerk" {
			// a staff record without the role field
			_, _ = w.Write([]byte(`{"data":{"nvid":5,"taikhoan":"clerk"},"token":"tok-clerk"}`))
			return
		}
		role := domain.RoleStaff
		if in.Account == "admin" {
			role = domain.RoleAdmin
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  models.Staff{ID: 1, Name: in.Account, Account: in.Account, Role: role},
			"token": "tok-" + in.Account,
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	mux.HandleFunc("GET /staff/list", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []models.Staff{
			{ID: 1, Name: "An", Account: "an", Revenue: 10},
			{ID: 2, Name: "Binh", Account: "binh", Revenue: 30},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client, err := apiclient.New(upstream(t).URL, apiclient.WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	tokens, err := session.NewTokens("router-test-secret-0123456789")
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	api := &h.API{
		Client:   client,
		Sessions: session.NewManager(session.NewMemoryStore(), tokens, time.Hour),
		Registry: services.NewRegistry(client, time.Minute, 0),
	}
	return NewRouter(intconfig.Env{}, api)
}

func do(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, account string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/auth/login", "", `{"taikhoan":"`+account+`","matkhau":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", account, w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("login body %s: %v", w.Body.String(), err)
	}
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.Value == out.Token && ck.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("login should set the session cookie")
	}
	return out.Token
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/health", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"sessionStore":"memory"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/api/staffs", "/api/dashboard", "/api/nav"} {
		w := do(r, http.MethodGet, path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: %d", path, w.Code)
		}
	}
	if w := do(r, http.MethodGet, "/api/staffs", "not-a-token", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", w.Code)
	}
}

func TestLoginListLogout(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin")

	w := do(r, http.MethodGet, "/api/staffs", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("staff list: %d %s", w.Code, w.Body.String())
	}
	var page struct {
		Rows []models.Staff `json:"rows"`
		Sort string         `json:"sort"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Rows) != 2 || page.Rows[0].Name != "Binh" || page.Sort != "doanhthu" {
		t.Fatalf("staff should be sorted by revenue desc: %+v", page)
	}

	if w := do(r, http.MethodPost, "/api/auth/logout", token, ""); w.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/api/staffs", token, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("token should be dead after logout: %d", w.Code)
	}
}

func TestStaffWritesAreAdminOnly(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "sale")

	w := do(r, http.MethodPost, "/api/staffs", token, `{}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff role creating staff: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/nav", token, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `{"href":"/staffs","label":"Staff","canCreate":false}`) {
		t.Fatalf("nav for staff: %d %s", w.Code, w.Body.String())
	}
}

func TestLoginWithoutRoleGetsStaffRights(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "clerk")

	if w := do(r, http.MethodPost, "/api/staffs", token, `{}`); w.Code != http.StatusForbidden {
		t.Fatalf("record without role must not write staff: %d %s", w.Code, w.Body.String())
	}
	w := do(r, http.MethodGet, "/api/nav", token, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"role":"staff"`) {
		t.Fatalf("unexpected nav %d %s", w.Code, w.Body.String())
	}
}

func TestValidationErrorsCarryFields(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/auth/login", "", `{"taikhoan":"","matkhau":"123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body h.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "validation_error" || body.Fields["taikhoan"] == "" || body.Fields["matkhau"] == "" {
		t.Fatalf("unexpected error body %+v", body)
	}

	token := login(t, r, "admin")
	if w := do(r, http.MethodGet, "/api/staffs/abc", token, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/staffs?toggle=nope", token, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown sort toggle: %d %s", w.Code, w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)
	if w := do(r, http.MethodGet, "/api/nowhere", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
