package controller

import (
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary 获取学习进度
// @Description 按用户ID获取进度，首次访问时自动创建记录
// @Tags 学习进度
// @Produce json
// @Param user_id query string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /user [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		userID = ctx.Query("id")
	}
	if userID == "" {
		util.BadRequest(ctx, "user_id is required")
		return
	}

	record, err := c.UserService.GetOrCreate(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

// @Summary 更新学习进度
// @Description 浅合并进度字段，值为 "0" 或 YYYY-MM-DD
// @Tags 学习进度
// @Accept json
// @Produce json
// @Param userId path string true "用户ID"
// @Param fields body map[string]string true "进度字段"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /user/{userId}/update [post]
func (c *UserController) UpdateProgress(ctx *gin.Context) {
	var fields map[string]string
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.UserService.UpdateProgress(ctx.Request.Context(), ctx.Param("userId"), fields)
	switch {
	case err == nil:
		util.Success(ctx, record)
	case errors.Is(err, util.ErrInvalidProgress):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "User not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
