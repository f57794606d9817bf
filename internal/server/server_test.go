package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danmuck/modhost/internal/config"
	"github.com/danmuck/modhost/internal/modular"
	"github.com/danmuck/modhost/internal/observability"
	"github.com/danmuck/modhost/internal/pkgfs"
	"github.com/danmuck/modhost/internal/sample"
	"github.com/danmuck/modhost/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T, token string) *Server {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultHostConfig()
	cfg.Name = "modhost-test"
	cfg.AdminToken = token
	reg := modular.NewRegistry(sample.Environment(), modular.WithObserver(observability.RegistryObserver{}))
	s := Appear(cfg, reg)
	s.RegisterRoutes()
	return s
}

func do(s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	return rr
}

func TestModuleFileServed(t *testing.T) {
	s := newTestServer(t, "")

	rr := do(s, http.MethodGet, "/.Modules/Demo.Blog/wwwroot/site.css", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/css; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rr.Body.String() != "body {\n  font-family: sans-serif;\n}\n" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
	lastModified := rr.Header().Get("Last-Modified")
	if lastModified == "" {
		t.Fatalf("expected Last-Modified header")
	}

	// the module timestamp is shared by every file and stable across requests
	again := do(s, http.MethodGet, "/.Modules/Demo.Blog/wwwroot/img/logo.svg", nil)
	if again.Code != http.StatusOK || again.Header().Get("Last-Modified") != lastModified {
		t.Fatalf("expected same Last-Modified, got %q vs %q", again.Header().Get("Last-Modified"), lastModified)
	}

	m, err := s.Registry.Module("Demo.Blog")
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	if n := m.CachedFiles(); n != 2 {
		t.Fatalf("expected two cached lookups, got %d", n)
	}
}

func TestModuleFileConditionalAndHead(t *testing.T) {
	s := newTestServer(t, "")

	first := do(s, http.MethodGet, "/.Modules/Demo.Theme/wwwroot/theme.css", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	h := http.Header{}
	h.Set("If-Modified-Since", first.Header().Get("Last-Modified"))
	if rr := do(s, http.MethodGet, "/.Modules/Demo.Theme/wwwroot/theme.css", h); rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}

	head := do(s, http.MethodHead, "/.Modules/Demo.Theme/wwwroot/theme.css", nil)
	if head.Code != http.StatusOK || head.Body.Len() != 0 {
		t.Fatalf("expected empty 200 for HEAD, got %d len=%d", head.Code, head.Body.Len())
	}
}

func TestModuleFileNotFound(t *testing.T) {
	s := newTestServer(t, "")

	cases := []string{
		"/.Modules/Demo.Missing/wwwroot/site.css",
		"/.Modules/Demo.Blog/wwwroot/undeclared.css",
		"/.Modules/Demo.Blog/wwwroot/legacy.js",
		"/.Modules/Demo.Blog/module.toml",
	}
	for _, target := range cases {
		if rr := do(s, http.MethodGet, target, nil); rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", target, rr.Code)
		}
	}

	m, _ := s.Registry.Module("Demo.Blog")
	if n := m.CachedFiles(); n != 1 {
		t.Fatalf("only the declared legacy.js miss should be cached, got %d", n)
	}
}

func TestHealthReadyMetrics(t *testing.T) {
	s := newTestServer(t, "")

	if rr := do(s, http.MethodGet, "/health", nil); rr.Code != http.StatusOK {
		t.Fatalf("health: %d", rr.Code)
	}
	rr := do(s, http.MethodGet, "/ready", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("ready: %d body=%s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode ready: %v", err)
	}
	if body["application"] != sample.ApplicationName {
		t.Fatalf("unexpected ready body: %v", body)
	}
	if rr := do(s, http.MethodGet, "/metrics", nil); rr.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rr.Code)
	}
}

func TestReadyFailsWithoutApplication(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	reg := modular.NewRegistry(pkgfs.New(sample.Packages(), "Missing.App"))
	s := Appear(config.DefaultHostConfig(), reg)
	s.RegisterRoutes()

	if rr := do(s, http.MethodGet, "/ready", nil); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if rr := do(s, http.MethodGet, "/.Modules/Demo.Blog/wwwroot/site.css", nil); rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the application cannot load, got %d", rr.Code)
	}
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t, "s3cret")

	if rr := do(s, http.MethodGet, "/admin/modules", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	h := http.Header{}
	h.Set("Authorization", "Bearer s3cret")

	rr := do(s, http.MethodGet, "/admin/modules", h)
	if rr.Code != http.StatusOK {
		t.Fatalf("modules: %d", rr.Code)
	}
	var list struct {
		Modules []ModuleView `json:"modules"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode modules: %v", err)
	}
	if len(list.Modules) != 2 || list.Modules[0].Name != "Demo.Blog" || list.Modules[0].Root != ".Modules/Demo.Blog/" {
		t.Fatalf("unexpected modules: %+v", list.Modules)
	}
	if len(list.Modules[0].Info.Features) != 2 {
		t.Fatalf("expected blog features, got %+v", list.Modules[0].Info.Features)
	}

	rr = do(s, http.MethodGet, "/admin/modules/Demo.Theme", h)
	var view ModuleView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil || rr.Code != http.StatusOK {
		t.Fatalf("module view: code=%d err=%v", rr.Code, err)
	}
	if view.Info.ID != "Demo.Theme" || view.LastModified.After(time.Now()) {
		t.Fatalf("unexpected module view: %+v", view)
	}

	if rr := do(s, http.MethodGet, "/admin/modules/Nope", h); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown module, got %d", rr.Code)
	}

	rr = do(s, http.MethodGet, "/admin/application", h)
	if rr.Code != http.StatusOK {
		t.Fatalf("application: %d", rr.Code)
	}
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	s := newTestServer(t, "")
	h := http.Header{}
	h.Set("Authorization", "Bearer anything")
	if rr := do(s, http.MethodGet, "/admin/modules", h); rr.Code != http.StatusNotFound {
		t.Fatalf("expected admin routes to be absent, got %d", rr.Code)
	}
}
