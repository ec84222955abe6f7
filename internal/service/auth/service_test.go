package auth

import (
	"context"
	"testing"

	"github.com/pocketllm/portal/internal/repository"
	"github.com/pocketllm/portal/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(repository.NewAuthRepository(testutil.NewTestDB(t)))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, &RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Unexpected email: %s", user.Email)
	}
	if user.Role != "user" {
		t.Errorf("Expected default role user, got %s", user.Role)
	}

	// 重复注册
	if _, err := svc.Register(ctx, &RegisterRequest{
		Email:    "alice@example.com",
		Password: "other",
	}); err == nil {
		t.Error("Expected error for duplicate email")
	}

	resp, err := svc.Login(ctx, &LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("Expected successful login, got %q", resp.Message)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("Expected both tokens to be issued")
	}

	// 错误密码
	resp, err = svc.Login(ctx, &LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Success {
		t.Error("Expected login to fail with wrong password")
	}
}

func TestValidateAndRevokeToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, &RegisterRequest{
		Email:    "bob@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{
		Email:    "bob@example.com",
		Password: "secret123",
	})
	if err != nil || !resp.Success {
		t.Fatalf("Login failed: %v %q", err, resp.Message)
	}

	user, err := svc.ValidateToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Errorf("Unexpected user: %s", user.Email)
	}

	if _, err := svc.ValidateToken(ctx, "not-a-token"); err == nil {
		t.Error("Expected error for garbage token")
	}

	if err := svc.RevokeToken(ctx, resp.Token); err != nil {
		t.Fatalf("RevokeToken failed: %v", err)
	}
	if _, err := svc.ValidateToken(ctx, resp.Token); err == nil {
		t.Error("Expected revoked token to be rejected")
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, &RegisterRequest{
		Email:    "dave@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "newsecret"); err == nil {
		t.Error("Expected error with wrong old password")
	}

	if err := svc.ChangePassword(ctx, user.ID, "secret123", "newsecret"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{Email: "dave@example.com", Password: "newsecret"})
	if err != nil || !resp.Success {
		t.Errorf("Expected login with new password to succeed, got %v %q", err, resp.Message)
	}

	resp, err = svc.Login(ctx, &LoginRequest{Email: "dave@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Success {
		t.Error("Expected login with old password to fail")
	}
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, &RegisterRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	})
	if err != nil || !resp.Success {
		t.Fatalf("Login failed: %v %q", err, resp.Message)
	}

	access, refresh, err := svc.RefreshToken(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Error("Expected new token pair")
	}

	// 访问令牌不能用于刷新
	if _, _, err := svc.RefreshToken(ctx, resp.Token); err == nil {
		t.Error("Expected error when refreshing with an access token")
	}

	// 旧刷新令牌已被撤销
	if _, _, err := svc.RefreshToken(ctx, resp.RefreshToken); err == nil {
		t.Error("Expected old refresh token to be rejected after rotation")
	}
}
