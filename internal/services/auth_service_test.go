package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bluenote/backend/internal/models"
)

func TestRequestCode_FourDigits(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 50; i++ {
		c := env.code(t)
		n, err := strconv.Atoi(c.Code)
		if err != nil {
			t.Fatalf("code %q is not numeric", c.Code)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestCheckCode_ConsumedOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.code(t)

	if err := env.svc.Codes.CheckCode(ctx, c.ID, c.Code); err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if err := env.svc.Codes.CheckCode(ctx, c.ID, c.Code); !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("expected ErrCodeInvalid on second check, got %v", err)
	}
}

func TestCheckCode_Invalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.code(t)

	tests := []struct {
		name string
		id   string
		code string
	}{
		{"wrong code", c.ID, "0000"},
		{"unknown id", "6812251120cbc77f8a604be3", c.Code},
		{"malformed id", "not-an-id", c.Code},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := env.svc.Codes.CheckCode(ctx, tt.id, tt.code); !errors.Is(err, ErrCodeInvalid) {
				t.Errorf("expected ErrCodeInvalid, got %v", err)
			}
		})
	}

	// a failed attempt does not burn the code
	if err := env.svc.Codes.CheckCode(ctx, c.ID, c.Code); err != nil {
		t.Errorf("valid code rejected after failed attempts: %v", err)
	}
}

func TestCheckCode_Expired(t *testing.T) {
	env := newTestEnv(t)
	c := env.code(t)

	env.clock.Advance(DefaultCodeTTL + time.Second)
	if err := env.svc.Codes.CheckCode(context.Background(), c.ID, c.Code); !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("expected ErrCodeInvalid for expired code, got %v", err)
	}
}

func TestSignupThenLogin_TokenResolves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "alice", "pw1")

	c := env.code(t)
	data, err := env.svc.Auth.Login(ctx, &models.LoginRequest{Username: "alice", Password: "pw1", CodeID: c.ID, Code: c.Code})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if data.Username != "alice" || len(data.Token) != 32 {
		t.Errorf("unexpected login data: %+v", data)
	}

	user, err := env.svc.Auth.Authenticate(ctx, data.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("token resolved to %s", user.Username)
	}
}

func TestSignup_PasswordIsHashed(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "pw1")

	u := env.reload(t, "alice")
	if u.Password == "pw1" || u.Password == "" {
		t.Errorf("password stored in clear: %q", u.Password)
	}
	if u.LikedArticles == nil || u.SavedArticles == nil || u.Following == nil || u.WrittenComments == nil {
		t.Error("expected empty relationship sets")
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "pw1")

	c := env.code(t)
	err := env.svc.Auth.Signup(context.Background(), &models.SignupRequest{Username: "alice", Password: "pw2", CodeID: c.ID, Code: c.Code})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestSignup_RequiresCode(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.Auth.Signup(context.Background(), &models.SignupRequest{Username: "alice", Password: "pw", CodeID: "6812251120cbc77f8a604be3", Code: "1234"})
	if !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("expected ErrCodeInvalid, got %v", err)
	}
	if len(env.users.Users) != 0 {
		t.Error("user created without a valid code")
	}
}

func TestSignup_PasswordByteLimit(t *testing.T) {
	env := newTestEnv(t)

	c := env.code(t)
	err := env.svc.Auth.Signup(context.Background(), &models.SignupRequest{Username: "alice", Password: strings.Repeat("é", 37), CodeID: c.ID, Code: c.Code})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if KindOf(err) != KindValidation {
		t.Errorf("expected validation kind, got %v", KindOf(err))
	}
	if len(env.codes.Codes) != 1 {
		t.Error("verification code consumed by a rejected signup")
	}
}

func TestLogin_CredentialMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "alice", "pw1")

	for _, tc := range []struct{ username, password string }{
		{"alice", "wrong"},
		{"bob", "pw1"},
	} {
		c := env.code(t)
		_, err := env.svc.Auth.Login(ctx, &models.LoginRequest{Username: tc.username, Password: tc.password, CodeID: c.ID, Code: c.Code})
		if !errors.Is(err, ErrCredentialMismatch) {
			t.Errorf("%s/%s: expected ErrCredentialMismatch, got %v", tc.username, tc.password, err)
		}
	}
	if len(env.sessions.Sessions) != 0 {
		t.Error("session created for failed login")
	}
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Auth.Authenticate(ctx, ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
	if _, err := env.svc.Auth.Authenticate(ctx, "deadbeef"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	if err := env.sessions.CreateSession(ctx, &models.Session{Token: "orphan", Username: "ghost"}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Auth.Authenticate(ctx, "orphan"); !errors.Is(err, ErrSessionUserMissing) {
		t.Errorf("expected ErrSessionUserMissing, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "alice", "pw1")

	c := env.code(t)
	data, err := env.svc.Auth.Login(ctx, &models.LoginRequest{Username: "alice", Password: "pw1", CodeID: c.ID, Code: c.Code})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := env.svc.Auth.Logout(ctx, data.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := env.svc.Auth.Authenticate(ctx, data.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after logout, got %v", err)
	}
}
