package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/session"
)

// fakeUpstream is an in-memory back-office API.
type fakeUpstream struct {
	mu           sync.Mutex
	customers    []models.Customer
	staff        []models.Staff
	estates      []models.Property
	consignments []models.Consignment
	deposits     []models.Deposit
	transfers    []models.Transfer
	calls        map[string]int
	failures     map[string][]int
	lastQuery    map[string]string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{calls: map[string]int{}, failures: map[string][]int{}, lastQuery: map[string]string{}}
}

// failWith makes the next len(statuses) calls to path answer with them.
func (f *fakeUpstream) failWith(path string, statuses ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = append(f.failures[path], statuses...)
}

func (f *fakeUpstream) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeUpstream) query(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery[path]
}

func writeEnvelope(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Account string `json:"taikhoan"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Account != "admin" {
			writeEnvelope(w, http.StatusOK, map[string]any{"data": map[string]any{}, "message": "Wrong account or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "abc"})
		writeEnvelope(w, http.StatusOK, map[string]any{
			"data":  models.Staff{ID: 1, Name: "Admin", Account: "admin", Role: domain.RoleAdmin},
			"token": "upstream-token",
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"message": "bye"})
	})
	mux.HandleFunc("GET /customer/list", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		search := strings.ToLower(q.Get("search"))
		f.mu.Lock()
		f.lastQuery["/customer/list"] = r.URL.RawQuery
		var rows []models.Customer
		for _, c := range f.customers {
			if search == "" || strings.Contains(strings.ToLower(c.FullName), search) {
				rows = append(rows, c)
			}
		}
		f.mu.Unlock()
		total := (len(rows) + limit - 1) / limit
		start := min((page-1)*limit, len(rows))
		end := min(start+limit, len(rows))
		writeEnvelope(w, http.StatusOK, map[string]any{"data": rows[start:end], "totalPage": total, "total": len(rows)})
	})
	mux.HandleFunc("POST /customer", func(w http.ResponseWriter, r *http.Request) {
		var c models.Customer
		_ = json.NewDecoder(r.Body).Decode(&c)
		f.mu.Lock()
		c.ID = int64(len(f.customers) + 1)
		f.customers = append(f.customers, c)
		f.mu.Unlock()
		writeEnvelope(w, http.StatusCreated, map[string]any{"data": c, "message": "Created"})
	})
	mux.HandleFunc("GET /staff/list", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, map[string]any{"data": f.staff})
	})
	mux.HandleFunc("GET /real-estate/list", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, map[string]any{"data": f.estates})
	})
	mux.HandleFunc("GET /consignment-contract/list", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, map[string]any{"data": f.consignments})
	})
	mux.HandleFunc("GET /consignment-contract/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, c := range f.consignments {
			if c.ID == id {
				writeEnvelope(w, http.StatusOK, map[string]any{"data": c})
				return
			}
		}
		writeEnvelope(w, http.StatusNotFound, map[string]any{"message": "Consignment contract not found"})
	})
	mux.HandleFunc("POST /consignment-contract", func(w http.ResponseWriter, r *http.Request) {
		var c models.Consignment
		_ = json.NewDecoder(r.Body).Decode(&c)
		f.mu.Lock()
		c.ID = int64(len(f.consignments) + 1)
		c.Status = models.ConsignmentActive
		for _, cu := range f.customers {
			if cu.ID == c.CustomerID {
				cu := cu
				c.Customer = &cu
			}
		}
		f.consignments = append(f.consignments, c)
		f.mu.Unlock()
		writeEnvelope(w, http.StatusCreated, map[string]any{"data": c, "message": "Created"})
	})
	mux.HandleFunc("GET /deposit-contract/list", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, map[string]any{"data": f.deposits})
	})
	mux.HandleFunc("GET /transfer-contract/list", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, map[string]any{"data": f.transfers})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.URL.Path]++
		var status int
		if q := f.failures[r.URL.Path]; len(q) > 0 {
			status, f.failures[r.URL.Path] = q[0], q[1:]
		}
		f.mu.Unlock()
		if status != 0 {
			writeEnvelope(w, status, map[string]any{"message": "upstream failure"})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// newTestWorkspace starts the fake upstream and returns a workspace of a
// signed-in admin bound to it.
func newTestWorkspace(t *testing.T, f *fakeUpstream) (*Workspace, *Registry, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL)
	if err != nil {
		t.Fatalf("apiclient init error: %v", err)
	}
	reg := NewRegistry(client, time.Minute, time.Hour)
	sess := &session.Session{}
	if err := sess.Login(models.Staff{Account: "admin", Role: domain.RoleAdmin}, apiclient.Credentials{Token: "upstream-token"}, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("login error: %v", err)
	}
	return reg.For(sess), reg, sess
}

func customerNamed(name string) models.Customer {
	return models.Customer{FullName: name, Phone: "0901234567", Email: strings.ToLower(name) + "@example.com", Status: models.CustomerActive}
}
