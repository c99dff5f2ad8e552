package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shoplite/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Options{BaseURL: server.URL, Timeout: 2 * time.Second})
}

func TestUserGetByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"name":"bob","password":"pw","saved_products":[1,2]}`)
	})

	user, err := client.Users().GetByID(context.Background(), "7")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.ID != "7" || user.Name != "bob" || len(user.SavedProducts) != 2 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := client.Users().GetByID(context.Background(), "99")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !errors.Is(err, ErrRemoteFailure) {
		t.Fatalf("not found should also be a remote failure: %v", err)
	}
	if IsUnavailable(err) {
		t.Fatalf("not found should not be unavailable")
	}
}

func TestFindByCredentialsSendsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("name") != "alice" || r.URL.Query().Get("password") != "p&w" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `[{"id":1,"name":"alice"}]`)
	})

	users, err := client.Users().FindByCredentials(context.Background(), "alice", "p&w")
	if err != nil {
		t.Fatalf("find users failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != "1" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestListNotFoundIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	products, err := client.Products().List(context.Background())
	if err != nil {
		t.Fatalf("list should not fail on 404: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty products, got %+v", products)
	}
}

func TestServerErrorIsRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Products().GetByID(context.Background(), 3)
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if remoteErr.StatusCode != http.StatusInternalServerError || remoteErr.Message != "Could not fetch product" {
		t.Fatalf("unexpected remote error: %+v", remoteErr)
	}
	if IsUnavailable(err) || IsNotFound(err) {
		t.Fatalf("server error should be a plain remote failure: %v", err)
	}
}

func TestInvalidJSONIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})

	_, err := client.Products().List(context.Background())
	if !IsUnavailable(err) {
		t.Fatalf("parse failure should be unavailable, got %v", err)
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := New(Options{BaseURL: baseURL, Timeout: time.Second})
	_, err := client.Users().GetByID(context.Background(), "1")
	if !IsUnavailable(err) {
		t.Fatalf("closed server should be unavailable, got %v", err)
	}
}

func TestReplaceSendsWholeDocument(t *testing.T) {
	var received map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/4" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})

	user := &models.User{
		ID:        "4",
		Name:      "carol",
		CartItems: []models.CartEntry{{ProductID: 2, Quantity: 3}},
		Extra:     map[string]json.RawMessage{"password": json.RawMessage(`"pw"`)},
	}
	saved, err := client.Users().Replace(context.Background(), user)
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if saved.ID != "4" || len(saved.CartItems) != 1 || saved.CartItems[0].Quantity != 3 {
		t.Fatalf("unexpected saved user: %+v", saved)
	}
	for _, key := range []string{"password", "cart_items", "saved_products", "name"} {
		if _, ok := received[key]; !ok {
			t.Fatalf("whole document should contain %s", key)
		}
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := New(Options{
		BaseURL: server.URL,
		Timeout: time.Second,
		Breaker: BreakerOptions{Enabled: true, ConsecutiveFailures: 2, OpenTimeout: time.Minute},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.Products().List(context.Background()); err == nil || IsUnavailable(err) {
			t.Fatalf("attempt %d should be a remote failure, got %v", i, err)
		}
	}
	_, err := client.Products().List(context.Background())
	if !IsUnavailable(err) || !strings.Contains(err.Error(), "circuit open") {
		t.Fatalf("breaker should reject once open, got %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("open breaker should not reach the server, hits=%d", got)
	}
}
