package handler

import (
	"net/http"
	"strings"

	"Muze_Link/internal/pkg"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	resolver pkg.MediaResolver
}

func NewMediaHandler(resolver pkg.MediaResolver) *MediaHandler {
	return &MediaHandler{resolver: resolver}
}

// Fetch 把 /media/<key> 换成对象存储的限时签名地址后 302 过去。
// 本地落盘模式不会产生 /media/ 引用，这条路由只在对象存储启用时有意义
func (h *MediaHandler) Fetch(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	stored := pkg.ObjectPath(key)
	url, err := h.resolver.ResolveURL(stored)
	if err != nil || url == stored {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	c.Redirect(http.StatusFound, url)
}
