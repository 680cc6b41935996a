package controllers

import (
	"net/http"
	"strconv"

	"society-connect-http-service/models"
	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceFundController 定义基金控制器接口
type InterfaceFundController interface {
	GetOverview()
	CreateEntry()
	DeleteEntry()
}

// FundController 处理小区公共基金账目相关的请求
type FundController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFundController 创建一个新的基金控制器
func NewFundController(ctx *gin.Context, container *container.ServiceContainer) *FundController {
	return &FundController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateFundEntryRequest 表示记账请求
type CreateFundEntryRequest struct {
	Title       string  `json:"title" binding:"required" example:"电梯维保费"`
	Description string  `json:"description" example:"二季度电梯维保合同付款"`
	Type        string  `json:"type" binding:"required" example:"expense"`
	Category    string  `json:"category" example:"maintenance"`
	Amount      float64 `json:"amount" binding:"required" example:"18000"`
}

// 1 GetOverview 获取基金总览
// @Summary      获取基金总览
// @Description  所有已认证用户可见，返回账目明细和收支余额
// @Tags         Fund
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /funds [get]
func (c *FundController) GetOverview() {
	fundService := c.Container.GetService("fund").(services.InterfaceFundService)
	overview, err := fundService.GetOverview()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取基金总览成功",
		"data":    overview,
	})
}

// 2 CreateEntry 添加账目
// @Summary      添加基金账目
// @Tags         Fund
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateFundEntryRequest true "账目内容"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/funds [post]
func (c *FundController) CreateEntry() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req CreateFundEntryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	entry := &models.SocietyFund{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.FundType(req.Type),
		Category:    req.Category,
		Amount:      req.Amount,
	}

	fundService := c.Container.GetService("fund").(services.InterfaceFundService)
	if err := fundService.CreateEntry(principal, entry); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "账目添加成功",
		"data":    entry,
	})
}

// 3 DeleteEntry 删除账目
// @Summary      删除基金账目
// @Tags         Fund
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "账目ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/funds/{id} [delete]
func (c *FundController) DeleteEntry() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的账目ID",
			"data":    nil,
		})
		return
	}

	fundService := c.Container.GetService("fund").(services.InterfaceFundService)
	if err := fundService.DeleteEntry(principal, uint(id)); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "账目删除成功",
		"data":    nil,
	})
}

// HandleFundFunc 返回一个处理基金请求的Gin处理函数
func HandleFundFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFundController(ctx, container)

		switch method {
		case "getOverview":
			controller.GetOverview()
		case "createEntry":
			controller.CreateEntry()
		case "deleteEntry":
			controller.DeleteEntry()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
