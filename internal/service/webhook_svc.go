package service

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
)

// ==================== WebhookService 外部通知 ====================

// webhookPayload 推送到外部系统的消息体
type webhookPayload struct {
	Event   string `json:"event"`
	Table   string `json:"table"`
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	SentAt  string `json:"sent_at"`
}

// WebhookService 订单事件外推
// 新 pending 订单进来时 POST 到配置的地址（飞书/Slack 机器人、ERP 回调等）
// URL 为空表示未启用
type WebhookService struct {
	client *resty.Client
	url    string
	hub    *realtime.Hub

	stop chan struct{}
}

// NewWebhookService 创建通知服务
func NewWebhookService(url string, hub *realtime.Hub) *WebhookService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &WebhookService{
		client: client,
		url:    url,
		hub:    hub,
		stop:   make(chan struct{}),
	}
}

// Start 开始监听订单变更
func (s *WebhookService) Start() {
	if s.url == "" {
		log.Println("[Webhook] 未配置通知地址，跳过启动")
		return
	}

	// 只关心新进来的 pending 订单
	sub := s.hub.Subscribe("orders", func(c realtime.Change) bool {
		return c.Event == realtime.EventInsert && c.Status == model.OrderStatusPending
	})

	go s.consume(sub)
	log.Printf("[Webhook] 已启动, url=%s", s.url)
}

// Stop 停止监听
func (s *WebhookService) Stop() {
	close(s.stop)
}

func (s *WebhookService) consume(sub *realtime.Subscription) {
	defer s.hub.Unsubscribe(sub)

	for {
		select {
		case <-s.stop:
			return
		case c, ok := <-sub.C:
			if !ok {
				return
			}
			s.send(c)
		}
	}
}

// send 推送一条通知，失败只记日志
func (s *WebhookService) send(c realtime.Change) {
	payload := &webhookPayload{
		Event:   c.Event,
		Table:   c.Table,
		OrderID: c.RowID,
		Status:  c.Status,
		SentAt:  time.Now().Format(time.RFC3339),
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.url)
	if err != nil {
		log.Printf("[Webhook] 推送失败 order=%d: %v", c.RowID, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("[Webhook] 推送被拒 order=%d: HTTP %d", c.RowID, resp.StatusCode())
	}
}
