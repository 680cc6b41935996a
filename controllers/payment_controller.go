package controllers

import (
	"net/http"

	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfacePaymentController 定义物业缴费控制器接口
type InterfacePaymentController interface {
	RecordPayment()
	GetPayments()
	GetSummary()
}

// PaymentController 处理物业费缴纳相关的请求
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController 创建一个新的缴费控制器
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

// RecordPaymentRequest 表示缴费请求
type RecordPaymentRequest struct {
	Amount        float64 `json:"amount" example:"2500"`
	Month         string  `json:"month" binding:"required" example:"2026-09"`
	PaymentMethod string  `json:"payment_method" example:"upi"`
}

// 1 RecordPayment 记录本月物业费缴纳
// @Summary      缴纳物业费
// @Description  同一用户同一月份只能缴纳一次
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RecordPaymentRequest true "缴费信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /payments [post]
func (c *PaymentController) RecordPayment() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.RecordPayment(principal, req.Amount, req.Month, req.PaymentMethod)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "缴费成功",
		"data":    payment,
	})
}

// 2 GetPayments 获取缴费记录
// @Summary      获取缴费记录
// @Description  居民看本人记录，管理员看全部记录
// @Tags         Payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /payments [get]
func (c *PaymentController) GetPayments() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, err := paymentService.GetPayments(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取缴费记录成功",
		"data":    payments,
	})
}

// 3 GetSummary 获取收缴汇总
// @Summary      获取收缴汇总
// @Description  管理员查看总收缴金额和本月缴费户数
// @Tags         Payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/payments/summary [get]
func (c *PaymentController) GetSummary() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	summary, err := paymentService.GetSummary(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取收缴汇总成功",
		"data":    summary,
	})
}

// HandlePaymentFunc 返回一个处理缴费请求的Gin处理函数
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "recordPayment":
			controller.RecordPayment()
		case "getPayments":
			controller.GetPayments()
		case "getSummary":
			controller.GetSummary()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
