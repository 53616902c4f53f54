package service

import (
	"context"

	"Muze_Link/internal/model"
	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/mysql"

	"gorm.io/gorm"
)

type ShowcaseService struct {
	repo     *mysql.ShowcaseRepository
	resolver pkg.MediaResolver
}

func NewShowcaseService(db *gorm.DB, resolver pkg.MediaResolver) *ShowcaseService {
	return &ShowcaseService{
		repo:     &mysql.ShowcaseRepository{DB: db},
		resolver: resolver,
	}
}

// Update 一次请求里先删后增：只删本人的条目（他人的 id 静默丢弃，
// 对象尽力清理），再追加新上传的媒体
func (s *ShowcaseService) Update(ctx context.Context, me uint64, deleteIDs []uint64, newMediaPaths []string) error {
	if len(deleteIDs) > 0 {
		owned, err := s.repo.FindOwned(ctx, deleteIDs, me)
		if err != nil {
			return err
		}
		ownedIDs := make([]uint64, 0, len(owned))
		for _, it := range owned {
			ownedIDs = append(ownedIDs, it.ID)
		}
		if err := s.repo.DeleteOwned(ctx, ownedIDs, me); err != nil {
			return err
		}
		for _, it := range owned {
			s.resolver.Delete(it.MediaPath)
		}
	}

	for _, p := range newMediaPaths {
		if p == "" {
			continue
		}
		if err := s.repo.Create(&model.ShowcaseItem{UserID: me, MediaPath: p}); err != nil {
			return err
		}
	}
	return nil
}

// List 作品集，最新在前
func (s *ShowcaseService) List(ctx context.Context, userID uint64, limit int) ([]ShowcaseView, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ShowcaseView, 0, len(items))
	for _, it := range items {
		out = append(out, ShowcaseView{ID: it.ID, MediaPath: it.MediaPath, CreatedAt: it.CreatedAt})
	}
	return out, nil
}
