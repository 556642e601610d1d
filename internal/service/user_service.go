package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/DineshVarikuppala/Dukanam/internal/auth"
	"github.com/DineshVarikuppala/Dukanam/internal/config"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
)

// UserService 注册登录
type UserService struct {
	repo user.Repository
	jwt  *config.JWTConfig
}

// NewUserService 创建用户服务
func NewUserService(repo user.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

func hashPassword(raw, salt string) string {
	h := sha256.Sum256([]byte(raw + salt))
	return hex.EncodeToString(h[:])
}

// RegisterRequest 注册参数
type RegisterRequest struct {
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Password     string `json:"password"`
	Role         string `json:"role"`
}

// Register 注册，角色只允许买家或店主（管理员由种子数据创建）
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*user.User, error) {
	if req.Email == "" || req.Password == "" || req.MobileNumber == "" {
		return nil, wrapf(ErrInvalidInput, "email, mobile number and password are required")
	}
	role := req.Role
	if role == "" {
		role = user.RoleCustomer
	}
	if role != user.RoleCustomer && role != user.RoleStoreOwner {
		return nil, wrapf(ErrInvalidInput, "unknown role %q", role)
	}

	u := &user.User{
		Email:                     req.Email,
		MobileNumber:              req.MobileNumber,
		FirstName:                 req.FirstName,
		LastName:                  req.LastName,
		Role:                      role,
		Salt:                      "dukanam", // 简化实现，真实业务请使用随机盐
		EmailNotificationsEnabled: true,
	}
	u.Password = hashPassword(req.Password, u.Salt)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 校验密码并返回 JWT
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if isRecordNotFound(err) {
			return "", wrapf(ErrNotFound, "user %s", email)
		}
		return "", err
	}
	if hashPassword(password, u.Salt) != u.Password {
		return "", wrapf(ErrUnauthorized, "invalid password")
	}
	return auth.GenerateToken(s.jwt, u.ID, u.Email, u.Role)
}

// GetByID 用户详情
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, wrapf(ErrNotFound, "user %d", id)
		}
		return nil, err
	}
	return u, nil
}

// SetEmailNotifications 打开/关闭邮件通知
func (s *UserService) SetEmailNotifications(ctx context.Context, userID int64, enabled bool) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return wrapf(ErrNotFound, "user %d", userID)
		}
		return err
	}
	u.EmailNotificationsEnabled = enabled
	return s.repo.Update(ctx, u)
}
