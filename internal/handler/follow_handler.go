package handler

import (
	"net/http"

	"Muze_Link/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

type followToggleReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// Toggle 关注/取关开关，返回切换后的状态和粉丝数
func (h *FollowHandler) Toggle(c *gin.Context) {
	var req followToggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	following, count, err := h.svc.Toggle(c.Request.Context(), userIDFromCtx(c), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following, "follower_count": count})
}

// ListFollowers 某用户的粉丝列表
func (h *FollowHandler) ListFollowers(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	rows, err := h.svc.ListFollowers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListFollowing 某用户的关注列表
func (h *FollowHandler) ListFollowing(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	rows, err := h.svc.ListFollowing(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
