package services

import (
	"errors"

	"society-connect-http-service/config"
	"society-connect-http-service/models"
	"society-connect-http-service/utils"

	"gorm.io/gorm"
)

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	Register(user *models.User) error
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetDirectory() ([]models.User, error)
	GetMaintenanceStaff() ([]models.User, error)
	UpdateProfile(principal Principal, targetID uint, updates map[string]interface{}) (*models.User, error)
	CreateStaffAccount(principal Principal, user *models.User) error
}

// UserService 提供用户与住户档案相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Register 注册新用户，公开注册只能获得居民角色
func (s *UserService) Register(user *models.User) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已被使用")
	}

	// 公开注册一律按居民处理，角色注册后不再变更
	user.Role = models.RoleResident

	return s.DB.Create(user).Error
}

// 2 Authenticate 校验用户名和密码
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("用户名或密码错误")
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, errors.New("用户名或密码错误")
	}

	return &user, nil
}

// 3 GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// 4 GetDirectory 获取住户通讯录，按楼栋和门牌排序
func (s *UserService) GetDirectory() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("role = ?", models.RoleResident).
		Order("wing").Order("flat_number").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// 5 GetMaintenanceStaff 获取所有维修人员
func (s *UserService) GetMaintenanceStaff() ([]models.User, error) {
	var staff []models.User
	if err := s.DB.Where("role = ?", models.RoleMaintenanceStaff).Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// 6 UpdateProfile 更新档案信息，本人或管理员可操作，角色字段不接受修改
func (s *UserService) UpdateProfile(principal Principal, targetID uint, updates map[string]interface{}) (*models.User, error) {
	if principal.UserID != targetID && !principal.IsAdmin() {
		return nil, errors.New("没有权限修改该档案")
	}

	user, err := s.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}

	// 角色和密码不通过本接口修改
	delete(updates, "role")
	delete(updates, "password")

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(targetID)
}

// 7 CreateStaffAccount 创建维修人员账户，仅管理员可操作
func (s *UserService) CreateStaffAccount(principal Principal, user *models.User) error {
	if !principal.IsAdmin() {
		return errors.New("没有权限创建员工账户")
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已被使用")
	}

	user.Role = models.RoleMaintenanceStaff
	return s.DB.Create(user).Error
}
