package controllers

import (
	"net/http"
	"strconv"

	"society-connect-http-service/models"
	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceComplaintController 定义投诉控制器接口
type InterfaceComplaintController interface {
	GetComplaints()
	GetComplaint()
	CreateComplaint()
	AssignComplaint()
	UpdateStatus()
	RateComplaint()
}

// ComplaintController 处理投诉相关的请求
type ComplaintController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewComplaintController 创建一个新的投诉控制器
func NewComplaintController(ctx *gin.Context, container *container.ServiceContainer) *ComplaintController {
	return &ComplaintController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateComplaintRequest 表示创建投诉请求
type CreateComplaintRequest struct {
	Title       string `json:"title" binding:"required" example:"水管漏水"`
	Description string `json:"description" binding:"required" example:"厨房水管接口处持续渗水"`
	Category    string `json:"category" binding:"required" example:"plumbing"`
	Priority    string `json:"priority" example:"medium"`
}

// AssignComplaintRequest 表示分配投诉请求
type AssignComplaintRequest struct {
	StaffID uint `json:"staff_id" binding:"required" example:"3"`
}

// UpdateComplaintStatusRequest 表示更新投诉状态请求
type UpdateComplaintStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_progress"`
}

// RateComplaintRequest 表示投诉评价请求
type RateComplaintRequest struct {
	Rating  int    `json:"rating" binding:"required" example:"5"`
	Comment string `json:"comment" example:"处理及时，非常满意"`
}

// 1 GetComplaints 获取投诉列表
// @Summary      获取投诉列表
// @Description  按角色过滤：居民看本人投诉，维修人员看分配给自己的投诉，管理员看全部
// @Tags         Complaint
// @Produce      json
// @Security     BearerAuth
// @Param        status    query  string  false  "按状态过滤"
// @Param        category  query  string  false  "按类别过滤"
// @Param        priority  query  string  false  "按优先级过滤"
// @Param        page      query  int     false  "页码"  default(1)
// @Param        pageSize  query  int     false  "每页数量"  default(10)
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /complaints [get]
func (c *ComplaintController) GetComplaints() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var pq models.PaginationQuery
	if err := c.Ctx.ShouldBindQuery(&pq); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的分页参数",
			"data":    nil,
		})
		return
	}
	pq.Normalize()

	filter := services.ComplaintFilter{
		Status:   models.ComplaintStatus(c.Ctx.Query("status")),
		Category: models.ComplaintCategory(c.Ctx.Query("category")),
		Priority: models.ComplaintPriority(c.Ctx.Query("priority")),
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	complaints, total, err := complaintService.GetComplaints(principal, filter, pq.Page, pq.PageSize)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取投诉列表成功",
		"data": gin.H{
			"complaints": complaints,
			"pagination": models.NewPaginationResult(total, pq.Page, pq.PageSize),
		},
	})
}

// 2 GetComplaint 获取单个投诉
// @Summary      获取投诉详情
// @Tags         Complaint
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "投诉ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /complaints/{id} [get]
func (c *ComplaintController) GetComplaint() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的投诉ID",
			"data":    nil,
		})
		return
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	complaint, err := complaintService.GetComplaintByID(principal, uint(id))
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取投诉成功",
		"data":    complaint,
	})
}

// 3 CreateComplaint 提交投诉
// @Summary      提交投诉
// @Description  居民提交新投诉，初始状态为submitted
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateComplaintRequest true "投诉内容"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /complaints [post]
func (c *ComplaintController) CreateComplaint() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req CreateComplaintRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	complaint := &models.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Category:    models.ComplaintCategory(req.Category),
		Priority:    models.ComplaintPriority(req.Priority),
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	if err := complaintService.CreateComplaint(principal, complaint); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "投诉提交成功",
		"data":    complaint,
	})
}

// 4 AssignComplaint 分配投诉
// @Summary      分配投诉给维修人员
// @Description  管理员将submitted状态的投诉分配给维修人员
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                     true  "投诉ID"
// @Param        request  body  AssignComplaintRequest  true  "分配参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/complaints/{id}/assign [put]
func (c *ComplaintController) AssignComplaint() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的投诉ID",
			"data":    nil,
		})
		return
	}

	var req AssignComplaintRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	complaint, err := complaintService.AssignComplaint(principal, uint(id), req.StaffID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "投诉分配成功",
		"data":    complaint,
	})
}

// 5 UpdateStatus 更新投诉处理状态
// @Summary      更新投诉处理状态
// @Description  被分配的维修人员推进状态，只允许in_progress和resolved
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                           true  "投诉ID"
// @Param        request  body  UpdateComplaintStatusRequest  true  "目标状态"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /complaints/{id}/status [put]
func (c *ComplaintController) UpdateStatus() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的投诉ID",
			"data":    nil,
		})
		return
	}

	var req UpdateComplaintStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	complaint, err := complaintService.UpdateStatus(principal, uint(id), models.ComplaintStatus(req.Status))
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "状态更新成功",
		"data":    complaint,
	})
}

// 6 RateComplaint 评价并结单
// @Summary      评价投诉并结单
// @Description  投诉发起人对resolved状态的投诉评分后关闭
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                   true  "投诉ID"
// @Param        request  body  RateComplaintRequest  true  "评分与评价"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /complaints/{id}/rating [put]
func (c *ComplaintController) RateComplaint() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的投诉ID",
			"data":    nil,
		})
		return
	}

	var req RateComplaintRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	complaintService := c.Container.GetService("complaint").(services.InterfaceComplaintService)
	complaint, err := complaintService.RateAndClose(principal, uint(id), req.Rating, req.Comment)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "评价成功，投诉已关闭",
		"data":    complaint,
	})
}

// HandleComplaintFunc 返回一个处理投诉请求的Gin处理函数
func HandleComplaintFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewComplaintController(ctx, container)

		switch method {
		case "getComplaints":
			controller.GetComplaints()
		case "getComplaint":
			controller.GetComplaint()
		case "createComplaint":
			controller.CreateComplaint()
		case "assignComplaint":
			controller.AssignComplaint()
		case "updateStatus":
			controller.UpdateStatus()
		case "rateComplaint":
			controller.RateComplaint()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
