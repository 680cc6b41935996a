package routes

import (
	"society-connect-http-service/config"
	"society-connect-http-service/controllers"
	_ "society-connect-http-service/docs"
	"society-connect-http-service/middleware"
	"society-connect-http-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
	// 注册维修人员路由
	registerStaffRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由
	api.POST("/auth/register", controllers.HandleAuthFunc(container, "register"))
	api.POST("/auth/login", controllers.HandleAuthFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 用户档案与通讯录
	auth.GET("/users/me", controllers.HandleUserFunc(container, "getProfile"))
	auth.PUT("/users/:id", controllers.HandleUserFunc(container, "updateProfile"))
	auth.GET("/users/directory", controllers.HandleUserFunc(container, "getDirectory"))

	// 投诉路由
	auth.GET("/complaints", controllers.HandleComplaintFunc(container, "getComplaints"))
	auth.POST("/complaints", controllers.HandleComplaintFunc(container, "createComplaint"))
	auth.GET("/complaints/:id", controllers.HandleComplaintFunc(container, "getComplaint"))
	auth.PUT("/complaints/:id/status", controllers.HandleComplaintFunc(container, "updateStatus"))
	auth.PUT("/complaints/:id/rating", controllers.HandleComplaintFunc(container, "rateComplaint"))

	// 公告路由
	auth.GET("/announcements", controllers.HandleAnnouncementFunc(container, "getAnnouncements"))

	// 会议与回执路由
	auth.GET("/meetings", controllers.HandleMeetingFunc(container, "getMeetings"))
	auth.GET("/meetings/rsvps", controllers.HandleMeetingFunc(container, "getMyRSVPs"))
	auth.POST("/meetings/:id/rsvp", controllers.HandleMeetingFunc(container, "submitRSVP"))

	// 通知路由
	auth.GET("/notifications", controllers.HandleNotificationFunc(container, "getNotifications"))
	auth.GET("/notifications/unread-count", controllers.HandleNotificationFunc(container, "getUnreadCount"))
	auth.PUT("/notifications/read-all", controllers.HandleNotificationFunc(container, "markAllRead"))
	auth.PUT("/notifications/:id/read", controllers.HandleNotificationFunc(container, "markRead"))

	// 缴费路由
	auth.GET("/payments", controllers.HandlePaymentFunc(container, "getPayments"))
	auth.POST("/payments", controllers.HandlePaymentFunc(container, "recordPayment"))

	// 基金总览
	auth.GET("/funds", controllers.HandleFundFunc(container, "getOverview"))

	// 仪表盘
	auth.GET("/dashboard/stats", controllers.HandleDashboardFunc(container, "getStats"))
}

// registerAdminRoutes 注册管理员路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("/admin")
	admin.Use(middleware.AuthenticateAdmin())

	// 投诉分配
	admin.PUT("/complaints/:id/assign", controllers.HandleComplaintFunc(container, "assignComplaint"))

	// 公告管理
	admin.POST("/announcements", controllers.HandleAnnouncementFunc(container, "createAnnouncement"))
	admin.PUT("/announcements/:id", controllers.HandleAnnouncementFunc(container, "updateAnnouncement"))
	admin.DELETE("/announcements/:id", controllers.HandleAnnouncementFunc(container, "deleteAnnouncement"))

	// 会议管理
	admin.POST("/meetings", controllers.HandleMeetingFunc(container, "createMeeting"))
	admin.PUT("/meetings/:id", controllers.HandleMeetingFunc(container, "updateMeeting"))
	admin.DELETE("/meetings/:id", controllers.HandleMeetingFunc(container, "deleteMeeting"))

	// 通知发送
	admin.POST("/notifications", controllers.HandleNotificationFunc(container, "sendNotification"))

	// 收缴汇总
	admin.GET("/payments/summary", controllers.HandlePaymentFunc(container, "getSummary"))

	// 员工账户
	admin.GET("/staff", controllers.HandleUserFunc(container, "getMaintenanceStaff"))
	admin.POST("/staff", controllers.HandleUserFunc(container, "createStaffAccount"))

	// 工单管理
	admin.GET("/assignments", controllers.HandleStaffAssignmentFunc(container, "getAssignments"))
	admin.POST("/assignments", controllers.HandleStaffAssignmentFunc(container, "createAssignment"))
	admin.PUT("/assignments/:id/status", controllers.HandleStaffAssignmentFunc(container, "updateAssignmentStatus"))
	admin.DELETE("/assignments/:id", controllers.HandleStaffAssignmentFunc(container, "deleteAssignment"))

	// 基金管理
	admin.POST("/funds", controllers.HandleFundFunc(container, "createEntry"))
	admin.DELETE("/funds/:id", controllers.HandleFundFunc(container, "deleteEntry"))

	// 投诉分析
	admin.GET("/analytics/complaints", controllers.HandleDashboardFunc(container, "getComplaintAnalytics"))
}

// registerStaffRoutes 注册维修人员路由
func registerStaffRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	staff := api.Group("/staff")
	staff.Use(middleware.AuthenticateStaff())

	// 本人工单
	staff.GET("/assignments", controllers.HandleStaffAssignmentFunc(container, "getMyAssignments"))

	// 维修人员也可以向居民发送通知
	staff.POST("/notifications", controllers.HandleNotificationFunc(container, "sendNotification"))
}
