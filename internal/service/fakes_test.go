package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shoplite/internal/gateway"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/session"

	"github.com/shopspring/decimal"
)

type fakeUserGateway struct {
	mu           sync.Mutex
	users        map[models.RecordID]*models.User
	getErr       error
	replaceErr   error
	getCalls     int
	replaceCalls int
	findCalls    int
}

func newFakeUserGateway(users ...*models.User) *fakeUserGateway {
	g := &fakeUserGateway{users: make(map[models.RecordID]*models.User)}
	for _, user := range users {
		g.users[user.ID] = user.Clone()
	}
	return g
}

func (g *fakeUserGateway) GetByID(_ context.Context, id models.RecordID) (*models.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.getCalls++
	if g.getErr != nil {
		return nil, g.getErr
	}
	user, ok := g.users[id]
	if !ok {
		return nil, &gateway.RemoteError{Kind: gateway.ErrNotFound, StatusCode: 404, Message: "Could not fetch user"}
	}
	return user.Clone(), nil
}

func (g *fakeUserGateway) FindByCredentials(_ context.Context, name, password string) ([]models.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.findCalls++
	if g.getErr != nil {
		return nil, g.getErr
	}
	result := []models.User{}
	for _, user := range g.users {
		if user.Name != name {
			continue
		}
		if string(user.Extra["password"]) != `"`+password+`"` {
			continue
		}
		result = append(result, *user.Clone())
	}
	return result, nil
}

func (g *fakeUserGateway) Replace(_ context.Context, user *models.User) (*models.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replaceCalls++
	if g.replaceErr != nil {
		return nil, g.replaceErr
	}
	g.users[user.ID] = user.Clone()
	return user.Clone(), nil
}

func (g *fakeUserGateway) stored(id models.RecordID) *models.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.users[id].Clone()
}

func (g *fakeUserGateway) calls() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.getCalls, g.replaceCalls
}

type fakeProductGateway struct {
	mu       sync.Mutex
	products map[models.ProductID]models.Product
	err      error
	getCalls int
}

func newFakeProductGateway(products ...models.Product) *fakeProductGateway {
	g := &fakeProductGateway{products: make(map[models.ProductID]models.Product)}
	for _, product := range products {
		g.products[product.ID] = product
	}
	return g
}

func (g *fakeProductGateway) GetByID(_ context.Context, id models.ProductID) (*models.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.getCalls++
	if g.err != nil {
		return nil, g.err
	}
	product, ok := g.products[id]
	if !ok {
		return nil, &gateway.RemoteError{Kind: gateway.ErrNotFound, StatusCode: 404, Message: "Could not fetch product"}
	}
	return &product, nil
}

func (g *fakeProductGateway) List(_ context.Context) ([]models.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	result := make([]models.Product, 0, len(g.products))
	for _, product := range g.products {
		result = append(result, product)
	}
	return result, nil
}

func errUnavailable() error {
	return &wrappedUnavailable{}
}

type wrappedUnavailable struct{}

func (e *wrappedUnavailable) Error() string { return "dial tcp: connection refused" }
func (e *wrappedUnavailable) Unwrap() error { return gateway.ErrRemoteUnavailable }

func demoProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Blender", Category: "Appliances", Price: models.NewMoneyFromFloat(100), Rating: 4.1},
		{ID: 2, Name: "Headphones", Category: "Audio", Price: models.NewMoneyFromFloat(50), Rating: 4.8},
		{ID: 3, Name: "Speaker", Category: "Audio", Price: models.NewMoneyFromFloat(20), Rating: 3.9},
	}
}

type cartFixture struct {
	users    *fakeUserGateway
	products *fakeProductGateway
	service  *CartService
	sess     *session.Session
}

func newCartFixture(t *testing.T, user *models.User) *cartFixture {
	t.Helper()
	users := newFakeUserGateway()
	if user != nil {
		users = newFakeUserGateway(user)
	}
	products := newFakeProductGateway(demoProducts()...)
	svc := NewCartService(users, NewProductService(products, 0), CartServiceOptions{
		Retry: LoadRetryPolicy{
			Attempts:       3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
			AttemptTimeout: time.Second,
		},
		TaxRate: decimal.RequireFromString("0.05"),
	})
	manager := session.NewManager(session.NewMemoryStore(), time.Hour)
	sess, err := manager.Load(context.Background(), "test-session")
	if err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	if user != nil {
		if err := sess.SetIdentity(context.Background(), user.ID); err != nil {
			t.Fatalf("set identity failed: %v", err)
		}
	}
	return &cartFixture{users: users, products: products, service: svc, sess: sess}
}
