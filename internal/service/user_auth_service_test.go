package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
)

func TestValidatePassword(t *testing.T) {
	env := setupServiceTest(t)
	policy := env.cfg.Security.PasswordPolicy

	for _, weak := range []string{"short1", "onlyletters", "12345678"} {
		if err := validatePassword(policy, weak); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected %q to be rejected, got %v", weak, err)
		}
	}
	if err := validatePassword(policy, "secret123"); err != nil {
		t.Fatalf("expected strong password accepted, got %v", err)
	}
	err := validatePassword(policy, "a1")
	var policyErr passwordPolicyError
	if !errors.As(err, &policyErr) || len(policyErr.Args()) != 1 || policyErr.Args()[0] != 8 {
		t.Fatalf("expected min length in error args, got %v", err)
	}
}

func TestRegisterCreatesCustomer(t *testing.T) {
	env := setupServiceTest(t)

	user, customer, token, _, err := env.users.Register(RegisterInput{
		Email:     " New.User@Example.com ",
		Password:  "secret123",
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if customer.UserID != user.ID || customer.Membership != constants.MembershipBronze {
		t.Fatalf("unexpected customer: %+v", customer)
	}
	claims, err := env.users.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected token for user %d, got %d", user.ID, claims.UserID)
	}

	if _, _, _, _, err := env.users.Register(RegisterInput{Email: "new.user@example.com", Password: "secret123"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists, got %v", err)
	}
	if _, _, _, _, err := env.users.Register(RegisterInput{Email: "weak@example.com", Password: "weak"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}
	if _, _, _, _, err := env.users.Register(RegisterInput{Email: "not-an-email", Password: "secret123"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
}

func TestUserLogin(t *testing.T) {
	env := setupServiceTest(t)
	user, _, _, _, err := env.users.Register(RegisterInput{Email: "login@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := env.users.Login("login@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := env.users.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
	logged, token, _, err := env.users.Login("LOGIN@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result")
	}

	if err := env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := env.users.Login("login@example.com", "secret123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected user disabled, got %v", err)
	}
}

func TestParseUserJWTRejectsAdminToken(t *testing.T) {
	env := setupServiceTest(t)
	env.cfg.JWT.SecretKey = "admin-secret"
	env.cfg.UserJWT.SecretKey = "user-secret"

	auth := NewAuthService(env.cfg, nil)
	adminToken, _, err := auth.GenerateJWT(&models.Admin{ID: 1, Username: "root"})
	if err != nil {
		t.Fatalf("generate admin token failed: %v", err)
	}
	if _, err := env.users.ParseUserJWT(adminToken); err == nil {
		t.Fatalf("admin token must not be accepted as user token")
	}
}
