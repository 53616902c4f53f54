package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Muze_Link/internal/model"
	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/mysql"
	"Muze_Link/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo         *mysql.UserRepository
	followRepo   *mysql.FollowRepository
	showcaseRepo *mysql.ShowcaseRepository
	rUser        *redis.UserRepository
	emailSvc     *EmailService
	resolver     pkg.MediaResolver
}

func NewUserService(db *gorm.DB, emailSvc *EmailService, resolver pkg.MediaResolver) *UserService {
	return &UserService{
		repo:         &mysql.UserRepository{DB: db},
		followRepo:   &mysql.FollowRepository{DB: db},
		showcaseRepo: &mysql.ShowcaseRepository{DB: db},
		rUser:        &redis.UserRepository{},
		emailSvc:     emailSvc,
		resolver:     resolver,
	}
}

func (s *UserService) Register(username, password, email, role, code string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password required", ErrInvalidInput)
	}
	if role != model.RoleIndividual && role != model.RoleBand {
		role = model.RoleIndividual
	}

	// 验证code是否正确
	ok, err := s.emailSvc.VerifyCode("register", email, code)
	if err != nil || !ok {
		return fmt.Errorf("%w: verification failed", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
		Role:     role,
	}

	return s.repo.Create(user)
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrUnauthorized)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid password", ErrUnauthorized)
	}
	// 将token写入redis，保证单点登录
	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: old password is incorrect", ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}

	return s.Logout(usrID)
}

// ResetPassword 验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return fmt.Errorf("%w: verification failed", ErrInvalidInput)
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(user, string(hash))
}

// ShowcaseView 作品集条目
type ShowcaseView struct {
	ID        uint64    `json:"id"`
	MediaPath string    `json:"media_path"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileView 个人主页数据
type ProfileView struct {
	ID             uint64         `json:"id"`
	Username       string         `json:"username"`
	Role           string         `json:"role"`
	Bio            string         `json:"bio"`
	Avatar         string         `json:"avatar"`
	FollowerCount  int64          `json:"follower_count"`
	FollowingCount int64          `json:"following_count"`
	IsFollowing    bool           `json:"is_following"`
	Showcase       []ShowcaseView `json:"showcase"`
}

// Profile 主页：本人或他人，他人主页带 is_following
func (s *UserService) Profile(ctx context.Context, me, pageUserID uint64) (*ProfileView, error) {
	user, err := s.repo.FindByID(pageUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, pageUserID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, pageUserID)
	if err != nil {
		return nil, err
	}

	var isFollowing bool
	if me != pageUserID {
		if isFollowing, err = s.followRepo.IsFollowing(ctx, me, pageUserID); err != nil {
			return nil, err
		}
	}

	items, err := s.showcaseRepo.ListByUser(ctx, pageUserID, 12)
	if err != nil {
		return nil, err
	}
	showcase := make([]ShowcaseView, 0, len(items))
	for _, it := range items {
		showcase = append(showcase, ShowcaseView{ID: it.ID, MediaPath: it.MediaPath, CreatedAt: it.CreatedAt})
	}

	return &ProfileView{
		ID:             user.ID,
		Username:       user.Username,
		Role:           user.Role,
		Bio:            user.Bio,
		Avatar:         model.AvatarOrDefault(user.AvatarPath, user.Role),
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
		Showcase:       showcase,
	}, nil
}

// UpdateProfile 改名查重；换头像时旧的对象存储头像尽力清理
func (s *UserService) UpdateProfile(ctx context.Context, me uint64, username, bio, newAvatarPath string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	user, err := s.repo.FindByID(me)
	if err != nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if username != user.Username {
		taken, err := s.repo.UsernameTaken(username, me)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: username already taken", ErrInvalidInput)
		}
	}

	avatarPath := user.AvatarPath
	if newAvatarPath != "" {
		avatarPath = newAvatarPath
	}

	if err := s.repo.UpdateProfile(me, username, bio, avatarPath); err != nil {
		return err
	}

	if newAvatarPath != "" && user.AvatarPath != "" && user.AvatarPath != newAvatarPath {
		s.resolver.Delete(user.AvatarPath)
	}
	return nil
}

// UserSummary 搜索结果条目
type UserSummary struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

// Search 用户名子串搜索，排除自己，最多 10 条
func (s *UserService) Search(ctx context.Context, me uint64, q string) ([]UserSummary, error) {
	if q == "" {
		return []UserSummary{}, nil
	}
	users, err := s.repo.Search(ctx, q, me, 10)
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
			Avatar:   model.AvatarOrDefault(u.AvatarPath, u.Role),
		})
	}
	return out, nil
}

// DeleteAccount 密码确认后级联删除，媒体对象提交后尽力清理
func (s *UserService) DeleteAccount(ctx context.Context, me uint64, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password required", ErrInvalidInput)
	}

	user, err := s.repo.FindByID(me)
	if err != nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return fmt.Errorf("%w: password incorrect", ErrForbidden)
	}

	mediaPaths, err := s.repo.DeleteCascade(ctx, me)
	if err != nil {
		return err
	}
	for _, p := range mediaPaths {
		s.resolver.Delete(p)
	}

	if redis.Client != nil {
		_ = s.rUser.DeleteUserToken(me)
	}
	return nil
}
