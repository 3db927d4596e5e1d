package controller

import (
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// @Summary 发送测验合格通知
// @Description 向 Discord 频道发送祝贺消息并授予角色，外部调用失败时 success 为 false
// @Tags 通知
// @Accept json
// @Produce json
// @Param body body service.NotifyRequest true "通知参数"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /notify-discord [post]
func (c *NotificationController) NotifyPass(ctx *gin.Context) {
	var req service.NotifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	success, err := c.NotificationService.Notify(ctx.Request.Context(), req)
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"success": success})
	case errors.Is(err, util.ErrGuildNotSet):
		util.Error(ctx, http.StatusInternalServerError, "Guild ID is not configured on the server")
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "User not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
