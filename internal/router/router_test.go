package router

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shoplite/internal/config"
	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/provider"

	"github.com/gin-gonic/gin"
)

func newTestContainer(t *testing.T) (*config.Config, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("debug", logger.Options{})
	cfg := &config.Config{}
	cfg.Store.BaseURL = "http://127.0.0.1:1"
	cfg.Session.Header = constants.SessionHeader
	cfg.Session.CookieName = constants.SessionCookie
	cfg.MockStore.Database.Driver = "sqlite"
	cfg.MockStore.Database.DSN = filepath.Join(t.TempDir(), "store.db")
	c := provider.NewContainer(cfg)
	t.Cleanup(c.Close)
	return cfg, c
}

func TestSetupRouterServesStorefront(t *testing.T) {
	cfg, c := newTestContainer(t)
	r := SetupRouter(cfg, c)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Wearables") {
		t.Fatalf("unexpected categories response %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(constants.SessionHeader) == "" {
		t.Fatalf("api responses should carry a session id")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health should be ok, got %d", w.Code)
	}
}

func TestSetupStoreRouterRequiresMockStore(t *testing.T) {
	cfg, c := newTestContainer(t)
	if _, err := SetupStoreRouter(cfg, c); err == nil {
		t.Fatalf("store router should require an initialized mock store")
	}
	if err := c.InitMockStore(); err != nil {
		t.Fatalf("init mock store failed: %v", err)
	}
	if _, err := c.StoreService.Seed(models.CollectionProducts, []map[string]interface{}{{"id": 1, "name": "Fridge"}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	r, err := SetupStoreRouter(cfg, c)
	if err != nil {
		t.Fatalf("setup store router failed: %v", err)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Fridge") {
		t.Fatalf("unexpected store response %d %s", w.Code, w.Body.String())
	}
}
