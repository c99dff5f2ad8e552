package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/session"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserGateway, *session.Session) {
	t.Helper()
	users := newFakeUserGateway(&models.User{
		ID:    "3",
		Name:  "alice",
		Extra: map[string]json.RawMessage{"password": json.RawMessage(`"wonderland"`)},
	})
	manager := session.NewManager(session.NewMemoryStore(), time.Hour)
	sess, err := manager.Load(context.Background(), "auth-session")
	if err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	return NewAuthService(users), users, sess
}

func TestLoginSetsIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _, sess := newAuthFixture(t)
	if err := sess.SaveJSON(ctx, session.NamespaceCart, map[string]string{"status": "settled"}); err != nil {
		t.Fatalf("seed cart state failed: %v", err)
	}

	user, err := svc.Login(ctx, sess, " alice ", "wonderland")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != "3" || !sess.IsAuthenticated() || sess.Kind() != constants.SessionKindUser {
		t.Fatalf("session should hold the user id, got %+v", user)
	}
	var leftover map[string]string
	if ok, _ := sess.LoadJSON(ctx, session.NamespaceCart, &leftover); ok {
		t.Fatalf("previous cart state should be reset on login")
	}

	current, err := svc.CurrentUser(ctx, sess)
	if err != nil || current == nil || current.Name != "alice" {
		t.Fatalf("unexpected current user %+v err=%v", current, err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, users, sess := newAuthFixture(t)
	if _, err := svc.Login(ctx, sess, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(ctx, sess, "", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty username should be rejected, got %v", err)
	}
	if users.findCalls != 1 {
		t.Fatalf("empty username should not query the store, calls=%d", users.findCalls)
	}
	if sess.IsAuthenticated() {
		t.Fatalf("failed login should not set identity")
	}
}

func TestLoginStoreUnavailable(t *testing.T) {
	svc, users, sess := newAuthFixture(t)
	users.getErr = errUnavailable()
	if _, err := svc.Login(context.Background(), sess, "alice", "wonderland"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}

func TestGuestAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, sess := newAuthFixture(t)
	if err := svc.LoginAsGuest(ctx, sess); err != nil {
		t.Fatalf("guest login failed: %v", err)
	}
	if !sess.IsGuest() {
		t.Fatalf("session should be guest")
	}
	current, err := svc.CurrentUser(ctx, sess)
	if err != nil || current != nil {
		t.Fatalf("guest has no current user, got %+v err=%v", current, err)
	}
	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if sess.IsGuest() || sess.IsAuthenticated() {
		t.Fatalf("logout should clear identity")
	}
}
