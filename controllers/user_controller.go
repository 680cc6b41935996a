package controllers

import (
	"net/http"
	"strconv"

	"society-connect-http-service/models"
	"society-connect-http-service/services"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	GetProfile()
	UpdateProfile()
	GetDirectory()
	GetMaintenanceStaff()
	CreateStaffAccount()
}

// UserController 处理用户档案和通讯录相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateProfileRequest 表示更新档案请求
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Wing       *string `json:"wing"`
	FlatNumber *string `json:"flat_number"`
}

// CreateStaffRequest 表示创建员工账户请求
type CreateStaffRequest struct {
	Username string `json:"username" binding:"required" example:"staff01"`
	Password string `json:"password" binding:"required,min=6" example:"staff123"`
	FullName string `json:"full_name" binding:"required" example:"Suresh Yadav"`
	Phone    string `json:"phone" example:"9800011122"`
}

// 1 GetProfile 获取本人档案
// @Summary      获取本人档案
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
func (c *UserController) GetProfile() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(principal.UserID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取档案成功",
		"data":    user,
	})
}

// 2 UpdateProfile 更新档案
// @Summary      更新用户档案
// @Description  本人或管理员可改，角色和密码不在此接口修改
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                   true  "用户ID"
// @Param        request  body  UpdateProfileRequest  true  "修改内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [put]
func (c *UserController) UpdateProfile() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的用户ID",
			"data":    nil,
		})
		return
	}

	var req UpdateProfileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Wing != nil {
		updates["wing"] = *req.Wing
	}
	if req.FlatNumber != nil {
		updates["flat_number"] = *req.FlatNumber
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateProfile(principal, uint(id), updates)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "档案更新成功",
		"data":    user,
	})
}

// 3 GetDirectory 获取住户通讯录
// @Summary      获取住户通讯录
// @Description  按楼栋和门牌排序的居民名单
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /users/directory [get]
func (c *UserController) GetDirectory() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	residents, err := userService.GetDirectory()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取通讯录成功",
		"data":    residents,
	})
}

// 4 GetMaintenanceStaff 获取维修人员名单
// @Summary      获取维修人员名单
// @Description  管理员分配投诉时选择目标人员用
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/staff [get]
func (c *UserController) GetMaintenanceStaff() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	staff, err := userService.GetMaintenanceStaff()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取维修人员成功",
		"data":    staff,
	})
}

// 5 CreateStaffAccount 创建维修人员账户
// @Summary      创建维修人员账户
// @Description  只有管理员可以创建带maintenance_staff角色的账户
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateStaffRequest true "员工账户信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/staff [post]
func (c *UserController) CreateStaffAccount() {
	principal, ok := requirePrincipal(c.Ctx)
	if !ok {
		return
	}

	var req CreateStaffRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateStaffAccount(principal, user); err != nil {
		respondError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "员工账户创建成功",
		"data":    user,
	})
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getProfile":
			controller.GetProfile()
		case "updateProfile":
			controller.UpdateProfile()
		case "getDirectory":
			controller.GetDirectory()
		case "getMaintenanceStaff":
			controller.GetMaintenanceStaff()
		case "createStaffAccount":
			controller.CreateStaffAccount()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
