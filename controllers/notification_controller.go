package controllers

import (
	"net/http"
	"strconv"

	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceNotificationController 定义通知控制器接口
type InterfaceNotificationController interface {
	GetNotifications()
	GetUnreadCount()
	MarkRead()
	MarkAllRead()
	SendNotification()
}

// NotificationController 处理通知相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// SendNotificationRequest 表示发送通知请求
// target_id为空时向全体居民广播
type SendNotificationRequest struct {
	TargetID *uint  `json:"target_id" example:"5"`
	Title    string `json:"title" binding:"required" example:"停水通知"`
	Message  string `json:"message" binding:"required" example:"明日上午9点至12点小区停水检修"`
}

// 1 GetNotifications 获取本人通知列表
// @Summary      获取通知列表
// @Description  按时间倒序返回当前用户的通知
// @Tags         Notification
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "返回条数上限"  default(50)
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications [get]
func (c *NotificationController) GetNotifications() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "50"))

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notifications, err := notificationService.GetNotifications(principal, limit)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取通知成功",
		"data":    notifications,
	})
}

// 2 GetUnreadCount 获取未读通知数
// @Summary      获取未读通知数
// @Tags         Notification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	count, err := notificationService.GetUnreadCount(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取未读数成功",
		"data":    gin.H{"unread_count": count},
	})
}

// 3 MarkRead 标记单条通知已读
// @Summary      标记通知已读
// @Tags         Notification
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "通知ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [put]
func (c *NotificationController) MarkRead() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的通知ID",
			"data":    nil,
		})
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.MarkRead(principal, uint(id)); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "已标记为已读",
		"data":    nil,
	})
}

// 4 MarkAllRead 标记全部通知已读
// @Summary      标记全部通知已读
// @Tags         Notification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/read-all [put]
func (c *NotificationController) MarkAllRead() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.MarkAllRead(principal); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "全部通知已标记为已读",
		"data":    nil,
	})
}

// 5 SendNotification 管理员发送通知
// @Summary      发送通知
// @Description  管理员向指定用户发送通知，target_id为空时向全体居民广播
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendNotificationRequest true "通知内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/notifications [post]
// @Router       /staff/notifications [post]
func (c *NotificationController) SendNotification() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req SendNotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	delivered, err := notificationService.Broadcast(principal, req.TargetID, req.Title, req.Message)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "通知发送成功",
		"data":    gin.H{"delivered": delivered},
	})
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "getUnreadCount":
			controller.GetUnreadCount()
		case "markRead":
			controller.MarkRead()
		case "markAllRead":
			controller.MarkAllRead()
		case "sendNotification":
			controller.SendNotification()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
