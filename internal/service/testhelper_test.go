package service

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"Muze_Link/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq uint64

// newTestDB 每个测试独立的内存库，结构与线上 AutoMigrate 一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.SocialOutbox{},
		&model.Post{},
		&model.ShowcaseItem{},
		&model.Conversation{},
		&model.Message{},
		&model.ConversationRead{},
		&model.ConversationState{},
	))
	return db
}

const testPassword = "secret-pass"

func newTestUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	u := &model.User{
		Username: username,
		Password: string(hash),
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// fakeResolver 记录 Delete 调用，Upload 直接返回对象引用
type fakeResolver struct {
	deleted []string
}

func (f *fakeResolver) ResolveURL(storedPath string) (string, error) { return storedPath, nil }

func (f *fakeResolver) Upload(key, contentType string, body io.Reader) (string, error) {
	return "/media/" + key, nil
}

func (f *fakeResolver) Delete(storedPath string) {
	f.deleted = append(f.deleted, storedPath)
}
