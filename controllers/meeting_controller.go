package controllers

import (
	"net/http"
	"strconv"
	"time"

	"society-connect-http-service/models"
	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceMeetingController 定义会议控制器接口
type InterfaceMeetingController interface {
	GetMeetings()
	CreateMeeting()
	UpdateMeeting()
	DeleteMeeting()
	SubmitRSVP()
	GetMyRSVPs()
}

// MeetingController 处理会议和回执相关的请求
type MeetingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMeetingController 创建一个新的会议控制器
func NewMeetingController(ctx *gin.Context, container *container.ServiceContainer) *MeetingController {
	return &MeetingController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateMeetingRequest 表示创建会议请求
type CreateMeetingRequest struct {
	Title       string    `json:"title" binding:"required" example:"业主大会"`
	Description string    `json:"description" example:"讨论年度维修基金使用计划"`
	MeetingDate time.Time `json:"meeting_date" binding:"required" example:"2026-09-15T19:00:00+08:00"`
	Location    string    `json:"location" example:"小区会所二楼"`
}

// UpdateMeetingRequest 表示编辑会议请求
type UpdateMeetingRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	MeetingDate *time.Time `json:"meeting_date"`
	Location    *string    `json:"location"`
}

// RSVPRequest 表示会议回执请求
type RSVPRequest struct {
	Status string `json:"status" binding:"required" example:"attending"`
}

// 1 GetMeetings 获取会议列表
// @Summary      获取会议列表
// @Description  返回所有会议及各自的参加人数
// @Tags         Meeting
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /meetings [get]
func (c *MeetingController) GetMeetings() {
	meetingService := c.Container.GetService("meeting").(services.InterfaceMeetingService)
	meetings, err := meetingService.GetMeetings()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取会议列表成功",
		"data":    meetings,
	})
}

// 2 CreateMeeting 创建会议
// @Summary      创建会议
// @Description  管理员创建会议并向全体居民推送通知
// @Tags         Meeting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateMeetingRequest true "会议信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/meetings [post]
func (c *MeetingController) CreateMeeting() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req CreateMeetingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	meeting := &models.Meeting{
		Title:       req.Title,
		Description: req.Description,
		MeetingDate: req.MeetingDate,
		Location:    req.Location,
	}

	meetingService := c.Container.GetService("meeting").(services.InterfaceMeetingService)
	if err := meetingService.CreateMeeting(principal, meeting); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "会议创建成功",
		"data":    meeting,
	})
}

// 3 UpdateMeeting 编辑会议
// @Summary      编辑会议
// @Tags         Meeting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                   true  "会议ID"
// @Param        request  body  UpdateMeetingRequest  true  "修改内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/meetings/{id} [put]
func (c *MeetingController) UpdateMeeting() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的会议ID",
			"data":    nil,
		})
		return
	}

	var req UpdateMeetingRequest
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
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.MeetingDate != nil {
		updates["meeting_date"] = *req.MeetingDate
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	meetingService := c.Container.GetService("meeting").(services.InterfaceMeetingService)
	meeting, err := meetingService.UpdateMeeting(principal, uint(id), updates)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "会议更新成功",
		"data":    meeting,
	})
}

// 4 DeleteMeeting 删除会议
// @Summary      删除会议
// @Description  删除会议并级联删除所有回执
// @Tags         Meeting
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "会议ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/meetings/{id} [delete]
func (c *MeetingController) DeleteMeeting() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的会议ID",
			"data":    nil,
		})
		return
	}

	meetingService := c.Container.GetService("meeting").(services.InterfaceMeetingService)
	if err := meetingService.DeleteMeeting(principal, uint(id)); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "会议删除成功",
		"data":    nil,
	})
}

// 5 SubmitRSVP 提交会议回执
// @Summary      提交会议回执
// @Description  幂等提交，同一用户对同一会议重复提交只覆盖状态
// @Tags         Meeting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int          true  "会议ID"
// @Param        request  body  RSVPRequest  true  "回执状态"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /meetings/{id}/rsvp [post]
func (c *MeetingController) SubmitRSVP() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的会议ID",
			"data":    nil,
		})
		return
	}

	var req RSVPRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	meetingService := c.Container.GetService("meeting").(services.InterfaceMeetingService)
	if err := meetingService.SubmitRSVP(principal, uint(id), models.RSVPStatus(req.Status)); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "回执提交成功",
		"data":    nil,
	})
}

// 6 GetMyRSVPs 获取本人的会议回执
// @Summary      获取本人的会议回执
// @Tags         Meeting
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /meetings/rsvps [get]
func (c *MeetingController) GetMyRSVPs() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	meetingService := c.Container.GetService("meeting").(services.InterfaceMeetingService)
	rsvps, err := meetingService.GetUserRSVPs(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取回执成功",
		"data":    rsvps,
	})
}

// HandleMeetingFunc 返回一个处理会议请求的Gin处理函数
func HandleMeetingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMeetingController(ctx, container)

		switch method {
		case "getMeetings":
			controller.GetMeetings()
		case "createMeeting":
			controller.CreateMeeting()
		case "updateMeeting":
			controller.UpdateMeeting()
		case "deleteMeeting":
			controller.DeleteMeeting()
		case "submitRSVP":
			controller.SubmitRSVP()
		case "getMyRSVPs":
			controller.GetMyRSVPs()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
