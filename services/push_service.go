package services

import (
	"encoding/json"
	"fmt"
	"time"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// InterfacePushService defines the realtime push service interface
type InterfacePushService interface {
	Connect() error
	Disconnect()
	PublishNotification(notification *models.Notification) error
}

// PushService 通过MQTT向客户端推送通知变更
// 推送只是刷新信号，客户端以重新拉取为准
type PushService struct {
	Config *config.Config
	client mqtt.Client
}

// NewPushService 创建一个新的推送服务
func NewPushService(cfg *config.Config) InterfacePushService {
	return &PushService{
		Config: cfg,
	}
}

// Connect 连接MQTT服务器
func (s *PushService) Connect() error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBrokerURL).
		SetClientID(s.Config.MQTTClientID).
		SetUsername(s.Config.MQTTUsername).
		SetPassword(s.Config.MQTTPassword).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	opts.OnConnect = func(client mqtt.Client) {
		config.Info("MQTT推送服务已连接: %s", s.Config.MQTTBrokerURL)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		config.Warning("MQTT推送连接断开: %v", err)
	}

	s.client = mqtt.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("连接MQTT服务器超时: %s", s.Config.MQTTBrokerURL)
	}
	return token.Error()
}

// Disconnect 断开MQTT连接
func (s *PushService) Disconnect() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
	}
}

// PublishNotification 把通知行发布到接收者专属主题
// 主题: society/notifications/{userID}
func (s *PushService) PublishNotification(notification *models.Notification) error {
	if s.client == nil || !s.client.IsConnected() {
		return fmt.Errorf("MQTT客户端未连接")
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("society/notifications/%d", notification.UserID)
	token := s.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("发布通知超时: %s", topic)
	}
	return token.Error()
}
