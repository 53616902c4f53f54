package mysql

import (
	"context"

	"Muze_Link/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var usr model.User
	err := r.DB.Where("email = ?", email).First(&usr).Error
	return &usr, err
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return r.DB.Model(user).Update("password", newPassword).Error
}

// UsernameTaken 改名查重，排除自己
func (r *UserRepository) UsernameTaken(username string, excludeID uint64) (bool, error) {
	var n int64
	err := r.DB.Model(&model.User{}).
		Where("username = ? AND id != ?", username, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) UpdateProfile(id uint64, username, bio, avatarPath string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"username":    username,
			"bio":         bio,
			"avatar_path": avatarPath,
		}).Error
}

// Search 用户名模糊搜索，排除自己
func (r *UserRepository) Search(ctx context.Context, q string, excludeID uint64, limit int) ([]model.User, error) {
	var list []model.User
	err := r.DB.WithContext(ctx).
		Where("username LIKE ? AND id != ?", "%"+q+"%", excludeID).
		Order("username ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// DeleteCascade 账号删除：关注边、会话及其消息/状态、帖子、作品集、用户本体，单事务。
// 返回被删行引用的媒体路径，调用方在事务提交后做尽力而为的对象清理。
func (r *UserRepository) DeleteCascade(ctx context.Context, userID uint64) ([]string, error) {
	var mediaPaths []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paths []string
		if err := tx.Model(&model.ShowcaseItem{}).
			Where("user_id = ?", userID).
			Pluck("media_path", &paths).Error; err != nil {
			return err
		}
		mediaPaths = append(mediaPaths, paths...)

		paths = paths[:0]
		if err := tx.Model(&model.Post{}).
			Where("author_id = ? AND media_path != ''", userID).
			Pluck("media_path", &paths).Error; err != nil {
			return err
		}
		mediaPaths = append(mediaPaths, paths...)

		var avatar string
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Pluck("avatar_path", &avatar).Error; err != nil {
			return err
		}
		if avatar != "" {
			mediaPaths = append(mediaPaths, avatar)
		}

		// 本人参与的会话连同消息、已读游标、状态一并删除
		var convIDs []uint64
		if err := tx.Model(&model.Conversation{}).
			Where("user1_id = ? OR user2_id = ?", userID, userID).
			Pluck("id", &convIDs).Error; err != nil {
			return err
		}
		if len(convIDs) > 0 {
			if err := tx.Where("conversation_id IN ?", convIDs).Delete(&model.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Where("conversation_id IN ?", convIDs).Delete(&model.ConversationRead{}).Error; err != nil {
				return err
			}
			if err := tx.Where("conversation_id IN ?", convIDs).Delete(&model.ConversationState{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", convIDs).Delete(&model.Conversation{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("sender_id = ?", userID).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.ConversationRead{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.ConversationState{}).Error; err != nil {
			return err
		}

		if err := tx.Where("follower_id = ? OR followee_id = ?", userID, userID).Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.ShowcaseItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", userID).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return mediaPaths, nil
}
