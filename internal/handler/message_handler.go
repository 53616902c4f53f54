package handler

import (
	"net/http"

	"Muze_Link/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// List 拉取会话消息，副作用是把自己的已读游标推到当前时间
func (h *MessageHandler) List(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	detail, err := h.svc.List(c.Request.Context(), userIDFromCtx(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

type sendMessageReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Body           string `json:"body"`
}

// Send 发消息
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), userIDFromCtx(c), req.ConversationID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// Delete 撤回自己发的单条消息
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	deletedID, err := h.svc.Delete(c.Request.Context(), userIDFromCtx(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": deletedID})
}
