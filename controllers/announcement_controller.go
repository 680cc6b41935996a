package controllers

import (
	"net/http"
	"strconv"

	"society-connect-http-service/models"
	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceAnnouncementController 定义公告控制器接口
type InterfaceAnnouncementController interface {
	GetAnnouncements()
	CreateAnnouncement()
	UpdateAnnouncement()
	DeleteAnnouncement()
}

// AnnouncementController 处理公告相关的请求
type AnnouncementController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAnnouncementController 创建一个新的公告控制器
func NewAnnouncementController(ctx *gin.Context, container *container.ServiceContainer) *AnnouncementController {
	return &AnnouncementController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateAnnouncementRequest 表示发布公告请求
type CreateAnnouncementRequest struct {
	Title       string `json:"title" binding:"required" example:"电梯年检通知"`
	Content     string `json:"content" binding:"required" example:"本周六上午全体电梯停运年检"`
	IsEmergency bool   `json:"is_emergency" example:"false"`
}

// UpdateAnnouncementRequest 表示编辑公告请求
type UpdateAnnouncementRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsEmergency *bool   `json:"is_emergency"`
}

// 1 GetAnnouncements 获取公告列表
// @Summary      获取公告列表
// @Description  所有已认证用户可见，按发布时间倒序
// @Tags         Announcement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /announcements [get]
func (c *AnnouncementController) GetAnnouncements() {
	announcementService := c.Container.GetService("announcement").(services.InterfaceAnnouncementService)
	announcements, err := announcementService.GetAnnouncements()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取公告成功",
		"data":    announcements,
	})
}

// 2 CreateAnnouncement 发布公告
// @Summary      发布公告
// @Description  管理员发布公告并向全体居民推送通知
// @Tags         Announcement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateAnnouncementRequest true "公告内容"
// @Success      201  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/announcements [post]
func (c *AnnouncementController) CreateAnnouncement() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req CreateAnnouncementRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	announcement := &models.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		IsEmergency: req.IsEmergency,
	}

	announcementService := c.Container.GetService("announcement").(services.InterfaceAnnouncementService)
	if err := announcementService.CreateAnnouncement(principal, announcement); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "公告发布成功",
		"data":    announcement,
	})
}

// 3 UpdateAnnouncement 编辑公告
// @Summary      编辑公告
// @Tags         Announcement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                        true  "公告ID"
// @Param        request  body  UpdateAnnouncementRequest  true  "修改内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/announcements/{id} [put]
func (c *AnnouncementController) UpdateAnnouncement() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的公告ID",
			"data":    nil,
		})
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.IsEmergency != nil {
		updates["is_emergency"] = *req.IsEmergency
	}

	announcementService := c.Container.GetService("announcement").(services.InterfaceAnnouncementService)
	announcement, err := announcementService.UpdateAnnouncement(principal, uint(id), updates)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "公告更新成功",
		"data":    announcement,
	})
}

// 4 DeleteAnnouncement 删除公告
// @Summary      删除公告
// @Tags         Announcement
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "公告ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的公告ID",
			"data":    nil,
		})
		return
	}

	announcementService := c.Container.GetService("announcement").(services.InterfaceAnnouncementService)
	if err := announcementService.DeleteAnnouncement(principal, uint(id)); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "公告删除成功",
		"data":    nil,
	})
}

// HandleAnnouncementFunc 返回一个处理公告请求的Gin处理函数
func HandleAnnouncementFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAnnouncementController(ctx, container)

		switch method {
		case "getAnnouncements":
			controller.GetAnnouncements()
		case "createAnnouncement":
			controller.CreateAnnouncement()
		case "updateAnnouncement":
			controller.UpdateAnnouncement()
		case "deleteAnnouncement":
			controller.DeleteAnnouncement()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
