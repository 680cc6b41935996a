package services

import (
	"errors"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"gorm.io/gorm"
)

// InterfaceNotificationService defines the notification service interface
type InterfaceNotificationService interface {
	Notify(userID uint, title, message string, notifType models.NotificationType) error
	FanOutToResidents(title, message string, notifType models.NotificationType) (int, error)
	Broadcast(principal Principal, targetID *uint, title, message string) (int, error)
	GetNotifications(principal Principal, limit int) ([]models.Notification, error)
	GetUnreadCount(principal Principal) (int64, error)
	MarkRead(principal Principal, notificationID uint) error
	MarkAllRead(principal Principal) error
}

// NotificationService 提供站内通知的写入、扇出和已读管理
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  *RedisService // 可为nil，未读数退化为COUNT查询
	Push   InterfacePushService
}

// NewNotificationService 创建一个新的通知服务
func NewNotificationService(db *gorm.DB, cfg *config.Config, redisService *RedisService, push InterfacePushService) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
		Push:   push,
	}
}

// 1 Notify 为单个用户写入一条通知，写入成功后推送并使未读数缓存失效
func (s *NotificationService) Notify(userID uint, title, message string, notifType models.NotificationType) error {
	if title == "" || message == "" {
		return errors.New("通知标题和内容不能为空")
	}
	if !notifType.IsValid() {
		notifType = models.NotificationInfo
	}

	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		return err
	}

	s.invalidateUnreadCount(userID)

	// 推送是即发即弃的，错过的事件靠客户端重新拉取补齐
	if s.Push != nil {
		if err := s.Push.PublishNotification(&notification); err != nil {
			config.Warning("通知推送失败 user=%d: %v", userID, err)
		}
	}

	return nil
}

// 2 FanOutToResidents 向全体居民扇出一条通知
// 逐条写入，部分失败不回滚，尽量送达
func (s *NotificationService) FanOutToResidents(title, message string, notifType models.NotificationType) (int, error) {
	var residents []models.User
	if err := s.DB.Where("role = ?", models.RoleResident).Find(&residents).Error; err != nil {
		return 0, err
	}

	delivered := 0
	for _, resident := range residents {
		if err := s.Notify(resident.ID, title, message, notifType); err != nil {
			config.Warning("扇出通知失败 user=%d: %v", resident.ID, err)
			continue
		}
		delivered++
	}

	return delivered, nil
}

// 3 Broadcast 管理员或维修人员向单个居民或全体居民发送通知
func (s *NotificationService) Broadcast(principal Principal, targetID *uint, title, message string) (int, error) {
	if !principal.IsAdmin() && !principal.IsStaff() {
		return 0, errors.New("没有权限发送通知")
	}
	if title == "" || message == "" {
		return 0, errors.New("通知标题和内容不能为空")
	}

	if targetID != nil {
		var target models.User
		if err := s.DB.First(&target, *targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errors.New("接收用户不存在")
			}
			return 0, err
		}
		if target.Role != models.RoleResident {
			return 0, errors.New("只能向居民发送通知")
		}
		if err := s.Notify(target.ID, title, message, models.NotificationInfo); err != nil {
			return 0, err
		}
		return 1, nil
	}

	return s.FanOutToResidents(title, message, models.NotificationInfo)
}

// 4 GetNotifications 获取本人的通知，按时间倒序
func (s *NotificationService) GetNotifications(principal Principal, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var notifications []models.Notification
	if err := s.DB.Where("user_id = ?", principal.UserID).
		Order("created_at DESC").Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// 5 GetUnreadCount 获取本人未读通知数，优先读缓存
func (s *NotificationService) GetUnreadCount(principal Principal) (int64, error) {
	if s.Redis != nil {
		if count, err := s.Redis.GetUnreadCount(principal.UserID); err == nil {
			return count, nil
		}
	}

	var count int64
	if err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", principal.UserID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}

	if s.Redis != nil {
		if err := s.Redis.CacheUnreadCount(principal.UserID, count); err != nil {
			config.Warning("未读数缓存写入失败 user=%d: %v", principal.UserID, err)
		}
	}

	return count, nil
}

// 6 MarkRead 将本人的一条通知标记为已读
func (s *NotificationService) MarkRead(principal Principal, notificationID uint) error {
	result := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, principal.UserID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("通知不存在")
	}

	s.invalidateUnreadCount(principal.UserID)
	return nil
}

// 7 MarkAllRead 将本人所有未读通知标记为已读，不影响其他用户
func (s *NotificationService) MarkAllRead(principal Principal) error {
	if err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", principal.UserID, false).
		Update("is_read", true).Error; err != nil {
		return err
	}

	s.invalidateUnreadCount(principal.UserID)
	return nil
}

// invalidateUnreadCount 使未读数缓存失效
func (s *NotificationService) invalidateUnreadCount(userID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.InvalidateUnreadCount(userID); err != nil {
		config.Warning("未读数缓存失效失败 user=%d: %v", userID, err)
	}
}
