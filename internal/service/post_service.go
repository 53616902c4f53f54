package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Muze_Link/internal/model"
	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo     *mysql.PostRepository
	resolver pkg.MediaResolver
}

func NewPostService(db *gorm.DB, resolver pkg.MediaResolver) *PostService {
	return &PostService{
		repo:     &mysql.PostRepository{DB: db},
		resolver: resolver,
	}
}

// PostInput 创建/编辑共用的字段
type PostInput struct {
	Caption          string
	Genre            string
	MyInstrument     string
	TargetInstrument string
	Tags             string
	MediaPath        string
}

// FeedItem 动态流条目
type FeedItem struct {
	ID               uint64    `json:"id"`
	AuthorID         uint64    `json:"author_id"`
	Username         string    `json:"username"`
	Role             string    `json:"role"`
	Avatar           string    `json:"avatar"`
	Caption          string    `json:"caption"`
	Genre            string    `json:"genre"`
	MyInstrument     string    `json:"my_instrument"`
	TargetInstrument string    `json:"target_instrument"`
	Tags             string    `json:"tags"`
	MediaPath        string    `json:"media_path"`
	CreatedAt        time.Time `json:"created_at"`
}

func (s *PostService) Create(ctx context.Context, me uint64, in PostInput) (*model.Post, error) {
	post := &model.Post{
		AuthorID:         me,
		Caption:          in.Caption,
		Genre:            in.Genre,
		MyInstrument:     in.MyInstrument,
		TargetInstrument: in.TargetInstrument,
		Tags:             in.Tags,
		MediaPath:        in.MediaPath,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) findOwned(me, postID uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", ErrNotFound)
		}
		return nil, err
	}
	if post.AuthorID != me {
		return nil, fmt.Errorf("%w: not the author", ErrForbidden)
	}
	return post, nil
}

// Edit 仅作者可编辑。removeMedia 摘掉现有媒体；新上传覆盖摘除。
// 被替换/摘除的旧对象尽力清理
func (s *PostService) Edit(ctx context.Context, me, postID uint64, in PostInput, removeMedia bool) (*model.Post, error) {
	post, err := s.findOwned(me, postID)
	if err != nil {
		return nil, err
	}

	oldMedia := post.MediaPath
	mediaPath := oldMedia
	if removeMedia {
		mediaPath = ""
	}
	if in.MediaPath != "" {
		mediaPath = in.MediaPath
	}

	post.Caption = in.Caption
	post.Genre = in.Genre
	post.MyInstrument = in.MyInstrument
	post.TargetInstrument = in.TargetInstrument
	post.Tags = in.Tags
	post.MediaPath = mediaPath
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}

	if oldMedia != "" && oldMedia != mediaPath {
		s.resolver.Delete(oldMedia)
	}
	return post, nil
}

// Delete 仅作者可删，媒体对象尽力清理
func (s *PostService) Delete(ctx context.Context, me, postID uint64) error {
	post, err := s.findOwned(me, postID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(postID); err != nil {
		return err
	}
	if post.MediaPath != "" {
		s.resolver.Delete(post.MediaPath)
	}
	return nil
}

// Feed 筛选动态流
func (s *PostService) Feed(ctx context.Context, f mysql.FeedFilter) ([]FeedItem, error) {
	rows, err := s.repo.ListFeed(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]FeedItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, FeedItem{
			ID:               r.ID,
			AuthorID:         r.AuthorID,
			Username:         r.Username,
			Role:             r.Role,
			Avatar:           model.AvatarOrDefault(r.AvatarPath, r.Role),
			Caption:          r.Caption,
			Genre:            r.Genre,
			MyInstrument:     r.MyInstrument,
			TargetInstrument: r.TargetInstrument,
			Tags:             r.Tags,
			MediaPath:        r.MediaPath,
			CreatedAt:        r.CreatedAt,
		})
	}
	return out, nil
}
