package mysql

import (
	"context"
	"strings"
	"time"

	"Muze_Link/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// FeedFilter 首页动态流的筛选条件，零值字段不参与过滤
type FeedFilter struct {
	Role             string
	Genre            string
	TargetInstrument string
	MyInstrument     string
	Tags             []string
	Query            string
}

// FeedRow 帖子 + 作者摘要
type FeedRow struct {
	ID               uint64
	AuthorID         uint64
	Caption          string
	Genre            string
	MyInstrument     string
	TargetInstrument string
	Tags             string
	MediaPath        string
	CreatedAt        time.Time
	Username         string
	Role             string
	AvatarPath       string
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	return &post, err
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", post.ID).
		Updates(map[string]any{
			"caption":           post.Caption,
			"genre":             post.Genre,
			"my_instrument":     post.MyInstrument,
			"target_instrument": post.TargetInstrument,
			"tags":              post.Tags,
			"media_path":        post.MediaPath,
		}).Error
}

func (r *PostRepository) Delete(id uint64) error {
	return r.DB.Delete(&model.Post{}, id).Error
}

// ListFeed 按条件过滤的动态流，最新在前
func (r *PostRepository) ListFeed(ctx context.Context, f FeedFilter) ([]FeedRow, error) {
	q := r.DB.WithContext(ctx).
		Table("posts p").
		Select("p.id, p.author_id, p.caption, p.genre, p.my_instrument, p.target_instrument, p.tags, p.media_path, p.created_at, u.username, u.role, u.avatar_path").
		Joins("JOIN users u ON u.id = p.author_id")

	if f.Role == model.RoleIndividual || f.Role == model.RoleBand {
		q = q.Where("u.role = ?", f.Role)
	}
	if f.Genre != "" {
		q = q.Where("p.genre = ?", f.Genre)
	}
	if f.TargetInstrument != "" {
		q = q.Where("p.target_instrument = ?", f.TargetInstrument)
	}
	if f.MyInstrument != "" {
		q = q.Where("p.my_instrument = ?", f.MyInstrument)
	}
	if len(f.Tags) > 0 {
		// 任一标签命中即可
		conds := make([]string, 0, len(f.Tags))
		args := make([]any, 0, len(f.Tags))
		for _, t := range f.Tags {
			conds = append(conds, "p.tags LIKE ?")
			args = append(args, "%"+t+"%")
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("p.caption LIKE ? OR p.tags LIKE ? OR u.username LIKE ?", like, like, like)
	}

	var rows []FeedRow
	err := q.Order("p.created_at DESC, p.id DESC").Scan(&rows).Error
	return rows, err
}
