package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPathRoundTrip(t *testing.T) {
	p := ObjectPath("avatar_u1_0_abcd.png")
	assert.Equal(t, "/media/avatar_u1_0_abcd.png", p)

	key, ok := KeyFromPath(p)
	assert.True(t, ok)
	assert.Equal(t, "avatar_u1_0_abcd.png", key)

	_, ok = KeyFromPath("/static/uploads/local.png")
	assert.False(t, ok)
}

func TestObjectStoreEnabled(t *testing.T) {
	assert.False(t, MediaConfig{}.ObjectStoreEnabled())
	assert.False(t, MediaConfig{AccessKeyID: "k", SecretAccessKey: "s"}.ObjectStoreEnabled())
	assert.True(t, MediaConfig{AccessKeyID: "k", SecretAccessKey: "s", Bucket: "b"}.ObjectStoreEnabled())
}

func TestAllowedUploadExtensions(t *testing.T) {
	assert.True(t, AllowedPostFile("clip.MP4"))
	assert.True(t, AllowedPostFile("cover.jpeg"))
	assert.False(t, AllowedPostFile("track.wav"))
	assert.False(t, AllowedPostFile("noext"))

	assert.True(t, AllowedAvatarFile("me.PNG"))
	assert.False(t, AllowedAvatarFile("me.mp4"))
}

func TestUniqueUploadNameKeepsExtension(t *testing.T) {
	name := UniqueUploadName("post", 7, "My Demo.MOV")
	assert.Contains(t, name, "post_u7_")
	assert.Equal(t, ".mov", name[len(name)-4:])

	a := UniqueUploadName("post", 7, "x.png")
	b := UniqueUploadName("post", 7, "x.png")
	assert.NotEqual(t, a, b)
}
