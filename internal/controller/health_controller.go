package controller

import (
	"context"
	"elearning_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RecordProbe 用于探测记录文件是否可读
type RecordProbe interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

type HealthController struct {
	Records RecordProbe
}

func NewHealthController(records RecordProbe) *HealthController {
	return &HealthController{Records: records}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if _, err := c.Records.Snapshot(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Record file unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"records": "up",
		},
	})
}
