package model

import "time"

const (
	RoleIndividual = "individual"
	RoleBand       = "band"
)

type User struct {
	ID         uint64 `gorm:"primaryKey"`
	Username   string `gorm:"uniqueIndex;size:32;not null"`
	Password   string `gorm:"size:255;not null"`
	Role       string `gorm:"size:16;not null;default:'individual'"`
	Email      string `gorm:"uniqueIndex;size:64;not null"`
	Bio        string `gorm:"type:text"`
	AvatarPath string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultAvatarFor 用户无自定义头像时按角色回退
func DefaultAvatarFor(role string) string {
	if role == RoleBand {
		return "/static/img/profile_icon_band.png"
	}
	return "/static/img/profile_icon.png"
}

// AvatarOrDefault 空路径视为未设置
func AvatarOrDefault(avatarPath, role string) string {
	if avatarPath != "" {
		return avatarPath
	}
	return DefaultAvatarFor(role)
}
