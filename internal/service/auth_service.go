package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/config"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/jwt"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/redis"
)

var (
	ErrInvalidCredentials   = errors.New("メールアドレスまたはパスワードが間違っています。")
	ErrAccountDisabled      = errors.New("このアカウントは現在無効化されています。管理者に連絡してください。")
	ErrEmailTaken           = errors.New("このメールアドレスは既に登録されています")
	ErrAdminEmailRestricted = errors.New("このメールアドレスでは管理者登録できません")
	ErrUserNotFound         = errors.New("ユーザーが見つかりません")
)

// AuthService 認証ビジネスロジック
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout アクセストークンの JWT ID を残存有効期間だけ失効させる
	Logout(ctx context.Context, claims *jwt.Claims) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client // nil 可
	logger *zap.Logger
}

// NewAuthService AuthService を生成する
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	// 管理者登録は許可リストのメールアドレスに限定する
	if req.Role == model.RoleAdmin && req.Email != s.cfg.Auth.AdminEmail {
		return nil, ErrAdminEmailRestricted
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("ユーザー検索に失敗", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("パスワードハッシュの生成に失敗", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("ユーザー作成に失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("ユーザー登録完了",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
	)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("ユーザー検索に失敗", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// アーカイブ済み・無効化済みは認証情報が正しくても拒否する
	if !user.CanLogin() {
		return nil, ErrAccountDisabled
	}

	// 許可リスト外のメールアドレスでは管理者としてログインできない
	if user.Role == model.RoleAdmin && user.Email != s.cfg.Auth.AdminEmail {
		return nil, ErrAdminEmailRestricted
	}

	return s.issueTokens(user, req.RememberMe)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		// Redis なしではブラックリスト化できない。期限切れを待つのみ
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("トークンの失効登録に失敗", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
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
			s.logger.Warn("ブラックリスト照会に失敗", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("ユーザー検索に失敗", zap.Error(err))
		return nil, err
	}
	if !user.CanLogin() {
		return nil, ErrAccountDisabled
	}

	return s.issueTokens(user, claims.RememberMe)
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("ユーザー検索に失敗", zap.Error(err))
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) issueTokens(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("アクセストークンの発行に失敗", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.Role, rememberMe)
	if err != nil {
		s.logger.Error("リフレッシュトークンの発行に失敗", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}
