package handler

import (
	"net/http"
	"strconv"

	"Muze_Link/internal/pkg"
	"Muze_Link/internal/service"

	"github.com/gin-gonic/gin"
)

type ShowcaseHandler struct {
	svc      *service.ShowcaseService
	resolver pkg.MediaResolver
}

func NewShowcaseHandler(svc *service.ShowcaseService, resolver pkg.MediaResolver) *ShowcaseHandler {
	return &ShowcaseHandler{svc: svc, resolver: resolver}
}

// Update 一次请求里既能删旧条目（delete_ids）也能传新文件（media）
func (h *ShowcaseHandler) Update(c *gin.Context) {
	me := userIDFromCtx(c)

	var deleteIDs []uint64
	for _, raw := range c.PostFormArray("delete_ids") {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id != 0 {
			deleteIDs = append(deleteIDs, id)
		}
	}

	var newPaths []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["media"] {
			if !pkg.AllowedPostFile(fh.Filename) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported media format"})
				return
			}
			stored, err := saveUpload(h.resolver, "showcase", me, fh)
			if err != nil {
				respondError(c, err)
				return
			}
			newPaths = append(newPaths, stored)
		}
	}

	if err := h.svc.Update(c.Request.Context(), me, deleteIDs, newPaths); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListByUser 某用户的橱窗
func (h *ShowcaseHandler) ListByUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.svc.List(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
