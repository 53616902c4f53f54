package handler

import (
	"net/http"

	"Muze_Link/internal/service"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	svc *service.ConversationService
}

func NewConversationHandler(svc *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// Start 找到或新建与对方的会话，顺带把历史消息捎回去
func (h *ConversationHandler) Start(c *gin.Context) {
	var req struct {
		OtherUserID uint64 `json:"other_user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	detail, err := h.svc.StartOrGet(c.Request.Context(), userIDFromCtx(c), req.OtherUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// List 当前用户可见的会话列表
func (h *ConversationHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Delete 批量隐藏+清空会话，只影响自己这一侧
func (h *ConversationHandler) Delete(c *gin.Context) {
	var req struct {
		ConversationIDs []uint64 `json:"conversation_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	n, err := h.svc.Delete(c.Request.Context(), userIDFromCtx(c), req.ConversationIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": n})
}
