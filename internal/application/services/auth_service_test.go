package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/studytracker/core/internal/adapters/repository"
	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/config"
	"github.com/studytracker/core/internal/ports"
)

func newAuthFixture(t *testing.T) (*AuthService, *fixture) {
	t.Helper()

	f := newFixture(t)
	userRepo := repository.NewUserRepository(f.store)
	onboardingRepo := repository.NewOnboardingRepository(f.store)
	jwtCfg := config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "studytracker-test",
	}
	return NewAuthService(userRepo, onboardingRepo, jwtCfg, testLogger(t)), f
}

func signupRequest(username string) ports.SignupRequest {
	return ports.SignupRequest{
		Username:        username,
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestSignup(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, signupRequest("alex"))
	if err != nil {
		t.Fatalf("Signup() failed: %v", err)
	}

	if resp.User.Username != "alex" {
		t.Errorf("Username = %q", resp.User.Username)
	}
	if resp.User.Password != "" {
		t.Error("response must not carry the password")
	}
	if resp.Token == "" {
		t.Error("response must carry a session token")
	}
	if !resp.ShowOnboarding {
		t.Error("first signup must show onboarding")
	}

	current, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser() failed: %v", err)
	}
	if current.Username != "alex" {
		t.Errorf("active user = %q, want alex", current.Username)
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	svc, _ := newAuthFixture(t)

	req := signupRequest("alex")
	req.ConfirmPassword = "other"

	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, entities.ErrPasswordMismatch) {
		t.Errorf("Signup() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, signupRequest("alex")); err != nil {
		t.Fatalf("first Signup() failed: %v", err)
	}

	if _, err := svc.Signup(ctx, signupRequest("alex")); !errors.Is(err, entities.ErrUsernameTaken) {
		t.Errorf("second Signup() error = %v, want ErrUsernameTaken", err)
	}
}

func TestSignupConcurrentAccountsAllPersist(t *testing.T) {
	svc, f := newAuthFixture(t)
	ctx := context.Background()

	const accounts = 64

	var wg sync.WaitGroup
	errs := make([]error, accounts)
	for i := 0; i < accounts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Signup(ctx, signupRequest(fmt.Sprintf("user%02d", i)))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Signup() %d failed: %v", i, err)
		}
	}

	users, err := repository.NewUserRepository(f.store).List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(users) != accounts {
		t.Fatalf("persisted %d accounts, want %d", len(users), accounts)
	}

	seen := make(map[string]bool, accounts)
	for _, u := range users {
		if seen[u.Username] {
			t.Errorf("username %q persisted twice", u.Username)
		}
		seen[u.Username] = true
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	signedUp, err := svc.Signup(ctx, signupRequest("alex"))
	if err != nil {
		t.Fatalf("Signup() failed: %v", err)
	}

	resp, err := svc.Login(ctx, ports.LoginRequest{Username: "alex", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if resp.User.ID != signedUp.User.ID {
		t.Errorf("logged in user id = %d, want %d", resp.User.ID, signedUp.User.ID)
	}
	if resp.ShowOnboarding {
		t.Error("onboarding must only show once per user")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, signupRequest("alex")); err != nil {
		t.Fatalf("Signup() failed: %v", err)
	}

	tests := []struct {
		name string
		req  ports.LoginRequest
	}{
		{"wrong password", ports.LoginRequest{Username: "alex", Password: "nope"}},
		{"unknown username", ports.LoginRequest{Username: "ghost", Password: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.req); !errors.Is(err, entities.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLogoutClearsActiveUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, signupRequest("alex")); err != nil {
		t.Fatalf("Signup() failed: %v", err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}

	if _, err := svc.CurrentUser(ctx); !errors.Is(err, entities.ErrNoActiveUser) {
		t.Errorf("CurrentUser() error = %v, want ErrNoActiveUser", err)
	}
}

func TestValidateToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, signupRequest("alex"))
	if err != nil {
		t.Fatalf("Signup() failed: %v", err)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken() failed: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, resp.User.ID)
	}
	if claims.Username != "alex" {
		t.Errorf("claims.Username = %q, want alex", claims.Username)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
