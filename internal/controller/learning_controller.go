package controller

import (
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	LearningService *service.LearningService
}

func NewLearningController(learningService *service.LearningService) *LearningController {
	return &LearningController{LearningService: learningService}
}

// @Summary 学习资料列表
// @Tags 学习资料
// @Produce json
// @Success 200 {object} util.Response{data=[]model.LearningMaterial}
// @Router /learning-materials [get]
func (c *LearningController) ListMaterials(ctx *gin.Context) {
	materials, err := c.LearningService.ListMaterials(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// @Summary 测验定义文件列表
// @Tags 学习资料
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /tests [get]
func (c *LearningController) ListTests(ctx *gin.Context) {
	files, err := c.LearningService.ListQuizFiles(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, files)
}
