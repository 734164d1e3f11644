package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/testsupport"
	"bilemo-api/pkg/cache"
	"bilemo-api/pkg/utils"

	"go.uber.org/zap/zaptest"
)

type testServer struct {
	store *testsupport.Store
	app   *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	config := &utils.Config{
		App:        utils.AppConfig{Name: "bilemo-test"},
		JWT:        utils.JWTConfig{Secret: "router-secret", Issuer: "bilemo-test", ExpiryHours: 1},
		Cache:      utils.CacheConfig{Driver: utils.CacheDriverMemory, TTLSeconds: 3600, Capacity: 1000},
		Pagination: utils.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		HTTP:       utils.HTTPConfig{CORSOrigins: []string{"*"}},
	}

	logger := zaptest.NewLogger(t)
	c, err := cache.NewMemoryCache(cache.DefaultMemoryConfig(config.Cache), logger)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	store := testsupport.NewStore()
	app := Wiring(store.Repository(), c, config, logger)
	t.Cleanup(app.Close)

	return &testServer{store: store, app: app}
}

type envelope struct {
	Status     bool              `json:"status"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Errors     map[string]string `json:"errors"`
	Pagination struct {
		CurrentPage  int   `json:"current_page"`
		Limit        int   `json:"limit"`
		TotalPages   int   `json:"total_pages"`
		TotalRecords int64 `json:"total_records"`
	} `json:"pagination"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/login_check", "", map[string]string{
		"username": email,
		"password": testsupport.Password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body.String())
	}

	var tok struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(decode(t, rec).Data, &tok); err != nil || tok.Token == "" {
		t.Fatalf("login %s: no token in %s", email, rec.Body.String())
	}
	return tok.Token
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

var pixel9 = map[string]any{
	"model":           "Pixel 9",
	"manufacturer":    "Google",
	"processor":       "Tensor G4",
	"ram":             "8 GB",
	"storageCapacity": "128GB",
	"cameraDetails":   "50MP",
	"batteryLife":     "24 hours",
	"screenSize":      "6.3 pouces",
	"price":           "799",
	"stockQuantity":   "10",
}

func TestAuth_RequiresBearerToken(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "Acme", "acme@example.com")

	expectStatus(t, s.do(t, http.MethodGet, "/api/phones", "", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(t, http.MethodGet, "/api/phones", "not-a-jwt", nil), http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/phones", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusUnauthorized)

	token := s.login(t, "acme@example.com")
	expectStatus(t, s.do(t, http.MethodGet, "/api/phones", token, nil), http.StatusOK)
}

func TestAuth_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "Acme", "acme@example.com")

	rec := s.do(t, http.MethodPost, "/api/login_check", "", map[string]string{
		"username": "acme@example.com",
		"password": "wrong",
	})
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestPhones_AdminCreate(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	s.store.AddCustomer(t, "Acme", "acme@example.com")
	admin := s.login(t, "admin@bilemo.com")
	plain := s.login(t, "acme@example.com")

	expectStatus(t, s.do(t, http.MethodPost, "/api/phones", plain, pixel9), http.StatusForbidden)

	rec := s.do(t, http.MethodPost, "/api/phones", admin, pixel9)
	expectStatus(t, rec, http.StatusCreated)

	var phone map[string]any
	if err := json.Unmarshal(decode(t, rec).Data, &phone); err != nil {
		t.Fatalf("decode phone: %v", err)
	}
	if phone["id"] == "" || phone["releaseDate"] == nil {
		t.Errorf("missing id or releaseDate: %v", phone)
	}
	for field, want := range pixel9 {
		if phone[field] != want {
			t.Errorf("%s: want %v, got %v", field, want, phone[field])
		}
	}

	get := s.do(t, http.MethodGet, "/api/phones/"+phone["id"].(string), plain, nil)
	expectStatus(t, get, http.StatusOK)
	if !strings.Contains(get.Body.String(), `"model":"Pixel 9"`) {
		t.Errorf("round trip lost the model: %s", get.Body.String())
	}
}

func TestPhones_ValidationAndInvalidJSON(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	admin := s.login(t, "admin@bilemo.com")

	bad := map[string]any{}
	for k, v := range pixel9 {
		bad[k] = v
	}
	bad["price"] = "9.999"
	bad["stockQuantity"] = "ten"
	bad["model"] = "  "

	rec := s.do(t, http.MethodPost, "/api/phones", admin, bad)
	expectStatus(t, rec, http.StatusBadRequest)
	env := decode(t, rec)
	for _, field := range []string{"price", "stockQuantity", "model"} {
		if env.Errors[field] == "" {
			t.Errorf("expected an error for %s, got %v", field, env.Errors)
		}
	}

	rec = s.do(t, http.MethodPost, "/api/phones", admin, `{"model":`)
	expectStatus(t, rec, http.StatusBadRequest)
	if msg := decode(t, rec).Message; msg != "Invalid data" {
		t.Errorf("expected Invalid data, got %q", msg)
	}
}

func TestPhones_Pagination(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "Acme", "acme@example.com")
	for _, model := range []string{"A", "B", "C"} {
		s.store.AddPhone(t, model)
	}
	token := s.login(t, "acme@example.com")

	tests := []struct {
		query     string
		wantItems int
		wantPage  int
		wantLimit int
		wantPages int
	}{
		{"", 3, 1, 10, 1},
		{"?page=2&limit=2", 1, 2, 2, 2},
		{"?page=3&limit=2", 0, 3, 2, 2},
		{"?page=abc&limit=xyz", 3, 1, 10, 1},
		{"?page=0&limit=-5", 1, 1, 1, 3},
		{"?limit=1000", 3, 1, 100, 1},
		{"?page=922337203685477590&limit=10", 0, 922337203685477590, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/phones"+tt.query, token, nil)
			expectStatus(t, rec, http.StatusOK)
			env := decode(t, rec)

			var items []map[string]any
			if err := json.Unmarshal(env.Data, &items); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if items == nil {
				t.Error("expected data to be an array, got null")
			}
			if len(items) != tt.wantItems {
				t.Errorf("items: want %d, got %d", tt.wantItems, len(items))
			}
			p := env.Pagination
			if p.CurrentPage != tt.wantPage || p.Limit != tt.wantLimit || p.TotalPages != tt.wantPages || p.TotalRecords != 3 {
				t.Errorf("pagination: got %+v", p)
			}
		})
	}
}

func TestLists_HugePageIsEmpty(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	acme := s.store.AddCustomer(t, "Acme", "acme@example.com")
	s.store.AddUser(t, "jane@example.com", "Jane", "Doe", acme)
	s.store.AddPhone(t, "Pixel 8")
	admin := s.login(t, "admin@bilemo.com")
	plain := s.login(t, "acme@example.com")

	for _, tt := range []struct{ path, token string }{
		{"/api/phones", plain},
		{"/api/users", plain},
		{"/api/customers", admin},
	} {
		rec := s.do(t, http.MethodGet, tt.path+"?page=9223372036854775807&limit=100", tt.token, nil)
		expectStatus(t, rec, http.StatusOK)
		if data := string(decode(t, rec).Data); data != "[]" {
			t.Errorf("%s: expected an empty page, got %s", tt.path, data)
		}
	}
}

func TestPhones_ListCachedUntilWrite(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	s.store.AddCustomer(t, "Acme", "acme@example.com")
	phone := s.store.AddPhone(t, "Pixel 8")
	admin := s.login(t, "admin@bilemo.com")
	plain := s.login(t, "acme@example.com")

	first := s.do(t, http.MethodGet, "/api/phones?page=1&limit=5", plain, nil)
	second := s.do(t, http.MethodGet, "/api/phones?page=1&limit=5", plain, nil)
	expectStatus(t, first, http.StatusOK)

	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Errorf("cached responses differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if n := s.store.PhoneListCalls.Load(); n != 1 {
		t.Fatalf("expected one list query, got %d", n)
	}

	rec := s.do(t, http.MethodPut, "/api/phones/"+phone.ID.String(), admin, map[string]string{"price": "499.99"})
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"model":"Pixel 8"`) {
		t.Errorf("partial update lost the model: %s", rec.Body.String())
	}

	third := s.do(t, http.MethodGet, "/api/phones?page=1&limit=5", plain, nil)
	if n := s.store.PhoneListCalls.Load(); n != 2 {
		t.Errorf("expected the write to invalidate the page, got %d queries", n)
	}
	if !strings.Contains(third.Body.String(), `"price":"499.99"`) {
		t.Errorf("stale page after update: %s", third.Body.String())
	}
}

func TestPhones_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	admin := s.login(t, "admin@bilemo.com")

	expectStatus(t, s.do(t, http.MethodGet, "/api/phones/6f1c1a4e-3b39-4d7c-9a53-0c9f3d2d1e11", admin, nil), http.StatusNotFound)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/phones/not-a-uuid", admin, nil), http.StatusNotFound)
}

func TestCustomers_CreateWithUnknownUser(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	admin := s.login(t, "admin@bilemo.com")

	rec := s.do(t, http.MethodPost, "/api/customers", admin, map[string]any{
		"name":     "Acme",
		"email":    "acme@example.com",
		"password": "secret123",
		"userId":   "6f1c1a4e-3b39-4d7c-9a53-0c9f3d2d1e11",
	})
	expectStatus(t, rec, http.StatusBadRequest)
	if msg := decode(t, rec).Message; msg != "User not found" {
		t.Errorf("expected User not found, got %q", msg)
	}
	if s.store.CustomerCount() != 1 {
		t.Error("customer persisted despite the missing user")
	}
}

func TestCustomers_CRUD(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "admin", "admin@bilemo.com", entity.RoleAdmin)
	admin := s.login(t, "admin@bilemo.com")

	rec := s.do(t, http.MethodPost, "/api/customers", admin, map[string]any{
		"name":     "Acme",
		"email":    "acme@example.com",
		"password": "secret123",
	})
	expectStatus(t, rec, http.StatusCreated)
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("password leaked in the representation")
	}

	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(decode(t, rec).Data, &created)

	expectStatus(t, s.do(t, http.MethodPatch, "/api/customers/"+created.ID, admin, map[string]string{"name": "Acme Corp"}), http.StatusNoContent)

	get := s.do(t, http.MethodGet, "/api/customers/"+created.ID, admin, nil)
	expectStatus(t, get, http.StatusOK)
	body := get.Body.String()
	if !strings.Contains(body, `"name":"Acme Corp"`) || !strings.Contains(body, `"email":"acme@example.com"`) {
		t.Errorf("partial update not applied: %s", body)
	}

	// the customer can log in with the password given at creation
	acme := s.login(t, "acme@example.com")
	expectStatus(t, s.do(t, http.MethodDelete, "/api/customers/"+created.ID, acme, nil), http.StatusForbidden)

	expectStatus(t, s.do(t, http.MethodDelete, "/api/customers/"+created.ID, admin, nil), http.StatusNoContent)
	expectStatus(t, s.do(t, http.MethodGet, "/api/customers/"+created.ID, admin, nil), http.StatusNotFound)
}

func TestUsers_ScopedToPrincipal(t *testing.T) {
	s := newTestServer(t)
	s.store.AddCustomer(t, "Acme", "acme@example.com")
	globex := s.store.AddCustomer(t, "Globex", "globex@example.com")
	s.store.AddUser(t, "john@example.com", "John", "Roe", globex)
	token := s.login(t, "acme@example.com")

	rec := s.do(t, http.MethodPost, "/api/users", token, map[string]string{
		"email": "jane@example.com", "firstName": "Jane", "lastName": "Doe",
	})
	expectStatus(t, rec, http.StatusCreated)

	var created struct {
		ID    string                       `json:"id"`
		Links map[string]map[string]string `json:"_links"`
	}
	json.Unmarshal(decode(t, rec).Data, &created)
	for _, rel := range []string{"self", "list", "update", "create", "delete"} {
		if created.Links[rel]["href"] == "" {
			t.Errorf("missing %s link", rel)
		}
	}

	list := s.do(t, http.MethodGet, "/api/users", token, nil)
	expectStatus(t, list, http.StatusOK)
	if env := decode(t, list); env.Pagination.TotalRecords != 1 {
		t.Errorf("expected only the principal's user, got %d", env.Pagination.TotalRecords)
	}

	globexToken := s.login(t, "globex@example.com")
	expectStatus(t, s.do(t, http.MethodGet, "/api/users/"+created.ID, globexToken, nil), http.StatusForbidden)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/users/"+created.ID, globexToken, nil), http.StatusForbidden)

	expectStatus(t, s.do(t, http.MethodPut, "/api/users/"+created.ID, token, map[string]string{"lastName": "Smith"}), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodDelete, "/api/users/"+created.ID, token, nil), http.StatusNoContent)

	if s.store.UserCount() != 1 || s.store.EdgeCount() != 1 {
		t.Errorf("expected only Globex's user left, got %d users %d edges", s.store.UserCount(), s.store.EdgeCount())
	}
}

func TestUsers_DeleteSharedKeepsRow(t *testing.T) {
	s := newTestServer(t)
	acme := s.store.AddCustomer(t, "Acme", "acme@example.com")
	globex := s.store.AddCustomer(t, "Globex", "globex@example.com")
	user := s.store.AddUser(t, "jane@example.com", "Jane", "Doe", acme, globex)
	token := s.login(t, "acme@example.com")

	expectStatus(t, s.do(t, http.MethodDelete, "/api/users/"+user.ID.String(), token, nil), http.StatusNoContent)

	if !s.store.HasUser(user.ID) || !s.store.HasEdge(globex.ID, user.ID) || s.store.HasEdge(acme.ID, user.ID) {
		t.Error("shared user delete should only remove the acting customer's edge")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(t, http.MethodGet, "/health", "", nil), http.StatusOK)

	s.store.PingErr = errors.New("connection refused")
	expectStatus(t, s.do(t, http.MethodGet, "/health", "", nil), http.StatusServiceUnavailable)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", "", nil)

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Errorf("request counter not exported")
	}
}

func TestRateLimit(t *testing.T) {
	config := &utils.Config{
		JWT:        utils.JWTConfig{Secret: "router-secret", Issuer: "bilemo-test", ExpiryHours: 1},
		Cache:      utils.CacheConfig{Driver: utils.CacheDriverMemory, TTLSeconds: 60, Capacity: 10},
		Pagination: utils.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		HTTP:       utils.HTTPConfig{RateLimitPerMinute: 2, CORSOrigins: []string{"*"}},
	}
	logger := zaptest.NewLogger(t)
	c, _ := cache.NewMemoryCache(cache.DefaultMemoryConfig(config.Cache), logger)
	app := Wiring(testsupport.NewStore().Repository(), c, config, logger)
	defer app.Close()

	var last int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		last = rec.Code
		if last == http.StatusTooManyRequests {
			if rec.Header().Get("Retry-After") == "" {
				t.Error("missing Retry-After header")
			}
			return
		}
	}
	t.Fatalf("expected 429 after the burst, last status %d", last)
}
