package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"intern-dtr/backend/config"
	"intern-dtr/backend/internal/dto"
	"intern-dtr/backend/internal/model"
	"intern-dtr/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *mockUserRepo, *mockInternshipRepo) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}

	repo, userRepo, internshipRepo, _ := newTestRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo, internshipRepo
}

func createTestUser(userRepo *mockUserRepo, username, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "user-" + username,
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: string(hash),
	}
	userRepo.users[user.UserID] = user
	return user
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:           "alice",
		Email:              "alice@test.com",
		Password:           "password123",
		ConfirmPassword:    "password123",
		CompanyName:        "测试公司",
		SupervisorName:     "测试导师",
		StartDate:          "2026-03-01",
		TotalHoursRequired: 500,
	}
}

// ── 注册测试 ──

func TestRegister_Success(t *testing.T) {
	svc, userRepo, internshipRepo := setupTestAuthService()

	result, err := svc.Register(context.Background(), validRegisterRequest())

	if err != nil {
		t.Fatalf("Register 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("注册成功应签发 Token 对")
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
	if result.User.Username != "alice" {
		t.Errorf("期望 Username=alice，实际=%s", result.User.Username)
	}

	// 注册即建档：账号与实习档案同时创建
	user, err := userRepo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("注册后应能查到账号: %v", err)
	}
	internship, err := internshipRepo.GetByUserID(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("注册后应能查到实习档案: %v", err)
	}
	if internship.TotalHoursRequired != 500 {
		t.Errorf("期望 TotalHoursRequired=500，实际=%v", internship.TotalHoursRequired)
	}
	if internship.TotalHoursLogged != 0 {
		t.Errorf("新档案期望 TotalHoursLogged=0，实际=%v", internship.TotalHoursLogged)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	req := validRegisterRequest()
	req.ConfirmPassword = "different"
	_, err := svc.Register(context.Background(), req)

	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("期望 ErrPasswordMismatch，实际: %v", err)
	}
}

func TestRegister_BadStartDate(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	req := validRegisterRequest()
	req.StartDate = "03/01/2026"
	_, err := svc.Register(context.Background(), req)

	if !errors.Is(err, ErrInternshipDateFormat) {
		t.Errorf("期望 ErrInternshipDateFormat，实际: %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	createTestUser(userRepo, "alice", "password123")

	_, err := svc.Register(context.Background(), validRegisterRequest())

	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	existing := createTestUser(userRepo, "bob", "password123")
	existing.Email = "alice@test.com"

	_, err := svc.Register(context.Background(), validRegisterRequest())

	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	createTestUser(userRepo, "alice", "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.User.Username != "alice" {
		t.Errorf("期望 Username=alice，实际=%s", result.User.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	createTestUser(userRepo, "alice", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "wrong_password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nonexistent",
		Password: "password123",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestRefreshToken_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	createTestUser(userRepo, "alice", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("刷新成功应签发新 Token 对")
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	createTestUser(userRepo, "alice", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	// Access Token 不能用于刷新
	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("期望 ErrRefreshTokenInvalid，实际: %v", err)
	}
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "not-a-token")

	if !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("期望 ErrRefreshTokenInvalid，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestLogout_NoRedisIsNoop(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	// Redis 未接入时登出降级为空操作
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("无 Redis 时 Logout 不应报错: %v", err)
	}
}

// ── GetCurrentUser 测试 ──

func TestGetCurrentUser_WithInternship(t *testing.T) {
	svc, userRepo, internshipRepo := setupTestAuthService()
	createTestInternship(internshipRepo, "alice", 500)
	user, _ := userRepo.GetByUsername(context.Background(), "alice")

	result, err := svc.GetCurrentUser(context.Background(), user.UserID)

	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if result.Username != "alice" {
		t.Errorf("期望 Username=alice，实际=%s", result.Username)
	}
	if result.Internship == nil {
		t.Fatal("期望返回实习档案")
	}
	if result.Internship.TotalHoursRequired != 500 {
		t.Errorf("期望 TotalHoursRequired=500，实际=%v", result.Internship.TotalHoursRequired)
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.GetCurrentUser(context.Background(), "nonexistent")

	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── 修改密码测试 ──

func TestChangePassword_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	user := createTestUser(userRepo, "alice", "password123")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})

	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码可登录，旧密码失效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice", Password: "newpassword456",
	}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice", Password: "password123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码登录应失败，实际: %v", err)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	user := createTestUser(userRepo, "alice", "password123")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword456",
	})

	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}
