package mysql

import (
	"context"

	"Muze_Link/internal/model"

	"gorm.io/gorm"
)

type ShowcaseRepository struct {
	DB *gorm.DB
}

func (r *ShowcaseRepository) Create(item *model.ShowcaseItem) error {
	return r.DB.Create(item).Error
}

// ListByUser 作品集，最新在前
func (r *ShowcaseRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.ShowcaseItem, error) {
	var list []model.ShowcaseItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// FindOwned 限定 owner 的批量查询，他人的 id 直接丢弃
func (r *ShowcaseRepository) FindOwned(ctx context.Context, ids []uint64, userID uint64) ([]model.ShowcaseItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []model.ShowcaseItem
	err := r.DB.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Find(&list).Error
	return list, err
}

func (r *ShowcaseRepository) DeleteOwned(ctx context.Context, ids []uint64, userID uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&model.ShowcaseItem{}).Error
}
