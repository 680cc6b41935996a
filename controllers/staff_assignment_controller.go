package controllers

import (
	"net/http"
	"strconv"

	"society-connect-http-service/models"
	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceStaffAssignmentController 定义工单控制器接口
type InterfaceStaffAssignmentController interface {
	GetAssignments()
	GetMyAssignments()
	CreateAssignment()
	UpdateAssignmentStatus()
	DeleteAssignment()
}

// StaffAssignmentController 处理维修工单相关的请求
type StaffAssignmentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStaffAssignmentController 创建一个新的工单控制器
func NewStaffAssignmentController(ctx *gin.Context, container *container.ServiceContainer) *StaffAssignmentController {
	return &StaffAssignmentController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateAssignmentRequest 表示创建工单请求
type CreateAssignmentRequest struct {
	StaffUserID    uint   `json:"staff_user_id" binding:"required" example:"3"`
	AssignmentType string `json:"assignment_type" binding:"required" example:"存水箱清洗"`
	Description    string `json:"description" example:"每周五上午执行"`
	Schedule       string `json:"schedule" binding:"required" example:"weekly"`
	Wing           string `json:"wing" example:"A"`
}

// UpdateAssignmentStatusRequest 表示更新工单状态请求
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required" example:"completed"`
}

// 1 GetAssignments 获取全部工单
// @Summary      获取全部工单
// @Tags         StaffAssignment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/assignments [get]
func (c *StaffAssignmentController) GetAssignments() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	assignmentService := c.Container.GetService("staff_assignment").(services.InterfaceStaffAssignmentService)
	assignments, err := assignmentService.GetAssignments(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取工单成功",
		"data":    assignments,
	})
}

// 2 GetMyAssignments 维修人员获取本人工单
// @Summary      获取本人工单
// @Tags         StaffAssignment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /staff/assignments [get]
func (c *StaffAssignmentController) GetMyAssignments() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	assignmentService := c.Container.GetService("staff_assignment").(services.InterfaceStaffAssignmentService)
	assignments, err := assignmentService.GetMyAssignments(principal)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取本人工单成功",
		"data":    assignments,
	})
}

// 3 CreateAssignment 创建工单
// @Summary      创建工单
// @Description  管理员给维修人员安排周期性任务并推送通知
// @Tags         StaffAssignment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateAssignmentRequest true "工单信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/assignments [post]
func (c *StaffAssignmentController) CreateAssignment() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req CreateAssignmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	assignment := &models.StaffAssignment{
		StaffUserID:    req.StaffUserID,
		AssignmentType: req.AssignmentType,
		Description:    req.Description,
		Schedule:       models.AssignmentSchedule(req.Schedule),
	}
	if req.Wing != "" {
		assignment.Wing = &req.Wing
	}

	assignmentService := c.Container.GetService("staff_assignment").(services.InterfaceStaffAssignmentService)
	if err := assignmentService.CreateAssignment(principal, assignment); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "工单创建成功",
		"data":    assignment,
	})
}

// 4 UpdateAssignmentStatus 更新工单状态
// @Summary      更新工单状态
// @Tags         StaffAssignment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                            true  "工单ID"
// @Param        request  body  UpdateAssignmentStatusRequest  true  "目标状态"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/assignments/{id}/status [put]
func (c *StaffAssignmentController) UpdateAssignmentStatus() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的工单ID",
			"data":    nil,
		})
		return
	}

	var req UpdateAssignmentStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	assignmentService := c.Container.GetService("staff_assignment").(services.InterfaceStaffAssignmentService)
	assignment, err := assignmentService.UpdateAssignmentStatus(principal, uint(id), models.AssignmentStatus(req.Status))
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "工单状态更新成功",
		"data":    assignment,
	})
}

// 5 DeleteAssignment 删除工单
// @Summary      删除工单
// @Tags         StaffAssignment
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "工单ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/assignments/{id} [delete]
func (c *StaffAssignmentController) DeleteAssignment() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的工单ID",
			"data":    nil,
		})
		return
	}

	assignmentService := c.Container.GetService("staff_assignment").(services.InterfaceStaffAssignmentService)
	if err := assignmentService.DeleteAssignment(principal, uint(id)); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "工单删除成功",
		"data":    nil,
	})
}

// HandleStaffAssignmentFunc 返回一个处理工单请求的Gin处理函数
func HandleStaffAssignmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStaffAssignmentController(ctx, container)

		switch method {
		case "getAssignments":
			controller.GetAssignments()
		case "getMyAssignments":
			controller.GetMyAssignments()
		case "createAssignment":
			controller.CreateAssignment()
		case "updateAssignmentStatus":
			controller.UpdateAssignmentStatus()
		case "deleteAssignment":
			controller.DeleteAssignment()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
