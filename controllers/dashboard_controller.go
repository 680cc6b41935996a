package controllers

import (
	"net/http"

	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceDashboardController 定义仪表盘控制器接口
type InterfaceDashboardController interface {
	GetStats()
	GetComplaintAnalytics()
}

// DashboardController 处理仪表盘统计相关的请求
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建一个新的仪表盘控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// 1 GetStats 获取仪表盘统计
// @Summary      获取仪表盘统计
// @Description  按角色返回不同的统计视图
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /dashboard/stats [get]
func (c *DashboardController) GetStats() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	stats, err := dashboardService.GetStats(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取统计成功",
		"data":    stats,
	})
}

// 2 GetComplaintAnalytics 获取投诉分析
// @Summary      获取投诉分析
// @Description  管理员查看按类别、状态、楼栋、优先级的投诉分布和平均解决天数
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/analytics/complaints [get]
func (c *DashboardController) GetComplaintAnalytics() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	analytics, err := dashboardService.GetComplaintAnalytics(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取投诉分析成功",
		"data":    analytics,
	})
}

// HandleDashboardFunc 返回一个处理仪表盘请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getStats":
			controller.GetStats()
		case "getComplaintAnalytics":
			controller.GetComplaintAnalytics()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
