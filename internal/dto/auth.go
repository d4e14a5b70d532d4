package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
// 注册即建档：账号与实习档案在同一事务中创建（1:1）
type RegisterRequest struct {
	Username           string  `json:"username"             binding:"required,min=3,max=50"`
	Email              string  `json:"email"                binding:"required,email"`
	Password           string  `json:"password"             binding:"required,min=8,max=64"`
	ConfirmPassword    string  `json:"confirm_password"     binding:"required"`
	CompanyName        string  `json:"company_name"         binding:"max=200"`
	SupervisorName     string  `json:"supervisor_name"      binding:"max=100"`
	StartDate          string  `json:"start_date"           binding:"required"` // "2026-03-01"
	TotalHoursRequired float64 `json:"total_hours_required" binding:"required,gt=0"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username   string `json:"username"    binding:"required"`
	Password   string `json:"password"    binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"` // 非 Cookie 模式时使用
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserDetailResponse 当前用户详情响应（含实习档案）
type UserDetailResponse struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	Email      string              `json:"email"`
	Internship *InternshipResponse `json:"internship,omitempty"`
	CreatedAt  string              `json:"created_at"`
}

// TokenResponse 登录/注册/刷新成功响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}
