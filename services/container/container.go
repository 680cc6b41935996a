package container

import (
	"context"
	"log"
	"sync"
	"time"

	"society-connect-http-service/config"
	"society-connect-http-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储与推送服务
	redisService *services.RedisService
	pushService  services.InterfacePushService

	// 业务服务
	userService            services.InterfaceUserService
	complaintService       services.InterfaceComplaintService
	notificationService    services.InterfaceNotificationService
	announcementService    services.InterfaceAnnouncementService
	meetingService         services.InterfaceMeetingService
	paymentService         services.InterfacePaymentService
	staffAssignmentService services.InterfaceStaffAssignmentService
	fundService            services.InterfaceFundService
	dashboardService       services.InterfaceDashboardService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// 初始化Redis服务
	if c.redis != nil {
		c.redisService = services.NewRedisService(c.config)
	}

	// 初始化MQTT推送服务，连接失败时降级为不推送
	push := services.NewPushService(c.config)
	if err := push.Connect(); err != nil {
		log.Printf("MQTT推送服务连接失败: %v，通知将不实时推送", err)
	} else {
		c.pushService = push
	}

	// 初始化通知服务，再初始化依赖它的业务服务
	c.notificationService = services.NewNotificationService(c.db, c.config, c.redisService, c.pushService)

	c.userService = services.NewUserService(c.db, c.config)
	c.complaintService = services.NewComplaintService(c.db, c.config, c.notificationService)
	c.announcementService = services.NewAnnouncementService(c.db, c.config, c.notificationService)
	c.meetingService = services.NewMeetingService(c.db, c.config)
	c.paymentService = services.NewPaymentService(c.db, c.config)
	c.staffAssignmentService = services.NewStaffAssignmentService(c.db, c.config, c.notificationService)
	c.fundService = services.NewFundService(c.db, c.config)
	c.dashboardService = services.NewDashboardService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "push":
		return c.pushService
	case "user":
		return c.userService
	case "complaint":
		return c.complaintService
	case "notification":
		return c.notificationService
	case "announcement":
		return c.announcementService
	case "meeting":
		return c.meetingService
	case "payment":
		return c.paymentService
	case "staff_assignment":
		return c.staffAssignmentService
	case "fund":
		return c.fundService
	case "dashboard":
		return c.dashboardService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
