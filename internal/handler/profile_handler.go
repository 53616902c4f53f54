package handler

import (
	"net/http"

	"Muze_Link/internal/pkg"
	"Muze_Link/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc      *service.UserService
	resolver pkg.MediaResolver
}

func NewProfileHandler(svc *service.UserService, resolver pkg.MediaResolver) *ProfileHandler {
	return &ProfileHandler{svc: svc, resolver: resolver}
}

// Me 当前登录用户的主页
func (h *ProfileHandler) Me(c *gin.Context) {
	me := userIDFromCtx(c)
	view, err := h.svc.Profile(c.Request.Context(), me, me)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ByID 任意用户的主页
func (h *ProfileHandler) ByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	view, err := h.svc.Profile(c.Request.Context(), userIDFromCtx(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update 改用户名/签名，可选换头像（multipart）
func (h *ProfileHandler) Update(c *gin.Context) {
	me := userIDFromCtx(c)
	username := c.PostForm("username")
	bio := c.PostForm("bio")

	avatarPath := ""
	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		if !pkg.AllowedAvatarFile(fh.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported avatar format"})
			return
		}
		stored, err := saveUpload(h.resolver, "avatar", me, fh)
		if err != nil {
			respondError(c, err)
			return
		}
		avatarPath = stored
	}

	if err := h.svc.UpdateProfile(c.Request.Context(), me, username, bio, avatarPath); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
