package handler

import (
	"net/http"
	"strings"

	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/mysql"
	"Muze_Link/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc      *service.PostService
	resolver pkg.MediaResolver
}

func NewPostHandler(svc *service.PostService, resolver pkg.MediaResolver) *PostHandler {
	return &PostHandler{svc: svc, resolver: resolver}
}

// postInputFromForm 创建和编辑共用的表单字段
func postInputFromForm(c *gin.Context) service.PostInput {
	return service.PostInput{
		Caption:          c.PostForm("caption"),
		Genre:            c.PostForm("genre"),
		MyInstrument:     c.PostForm("my_instrument"),
		TargetInstrument: c.PostForm("target_instrument"),
		Tags:             c.PostForm("tags"),
	}
}

// Create 发帖，media 可选（multipart）
func (h *PostHandler) Create(c *gin.Context) {
	me := userIDFromCtx(c)
	in := postInputFromForm(c)

	if fh, err := c.FormFile("media"); err == nil && fh != nil {
		if !pkg.AllowedPostFile(fh.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported media format"})
			return
		}
		stored, err := saveUpload(h.resolver, "post", me, fh)
		if err != nil {
			respondError(c, err)
			return
		}
		in.MediaPath = stored
	}

	post, err := h.svc.Create(c.Request.Context(), me, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// Edit 编辑自己的帖子；remove_media=1 摘掉旧媒体，也可直接换新文件
func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	me := userIDFromCtx(c)
	in := postInputFromForm(c)

	if fh, err := c.FormFile("media"); err == nil && fh != nil {
		if !pkg.AllowedPostFile(fh.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported media format"})
			return
		}
		stored, err := saveUpload(h.resolver, "post", me, fh)
		if err != nil {
			respondError(c, err)
			return
		}
		in.MediaPath = stored
	}

	removeMedia := c.PostForm("remove_media") == "1"
	if _, err := h.svc.Edit(c.Request.Context(), me, id, in, removeMedia); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete 删除自己的帖子
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userIDFromCtx(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Feed 带过滤条件的动态流
func (h *PostHandler) Feed(c *gin.Context) {
	filter := mysql.FeedFilter{
		Role:             c.Query("role"),
		Genre:            c.Query("genre"),
		TargetInstrument: c.Query("target_instrument"),
		MyInstrument:     c.Query("my_instrument"),
		Query:            c.Query("q"),
	}
	for _, t := range strings.Split(c.Query("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			filter.Tags = append(filter.Tags, t)
		}
	}

	items, err := h.svc.Feed(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
