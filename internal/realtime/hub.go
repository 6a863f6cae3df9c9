package realtime

import (
	"sync"
)

// ==================== 变更事件 ====================

// 事件类型
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Change 一条行级变更通知
type Change struct {
	Table     string `json:"table"`
	Event     string `json:"event"`
	RowID     int64  `json:"row_id"`
	Status    string `json:"status"`     // 变更后的状态
	OldStatus string `json:"old_status"` // UPDATE 时变更前的状态
}

// Filter 订阅过滤器，返回 false 的事件不投递
type Filter func(Change) bool

// ==================== Subscription 订阅句柄 ====================

// Subscription 一路订阅
// C 上收事件；用完必须调 Hub.Unsubscribe，否则 channel 泄漏
type Subscription struct {
	C chan Change

	table  string
	filter Filter
}

// ==================== Hub 进程内变更总线 ====================

// Hub 按表分发行级变更事件
// 单写多读：服务层写路径 Publish，各订阅方（角标计数、SSE 推流、webhook）各拿一个 channel
type Hub struct {
	mu   sync.RWMutex
	subs map[string][]*Subscription // table -> 订阅列表
}

// NewHub 创建变更总线
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string][]*Subscription),
	}
}

// Subscribe 订阅某张表的变更
// filter 传 nil 表示接收该表全部事件
func (h *Hub) Subscribe(table string, filter Filter) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription{
		C:      make(chan Change, 16),
		table:  table,
		filter: filter,
	}
	h.subs[table] = append(h.subs[table], sub)
	return sub
}

// Unsubscribe 取消订阅并关闭 channel
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.subs[sub.table]
	for i, s := range list {
		if s == sub {
			h.subs[sub.table] = append(list[:i], list[i+1:]...)
			close(s.C)
			break
		}
	}

	if len(h.subs[sub.table]) == 0 {
		delete(h.subs, sub.table)
	}
}

// Publish 发布一条变更
// 非阻塞投递：订阅方消费太慢时丢弃，不能拖住写路径
func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[c.Table] {
		if sub.filter != nil && !sub.filter(c) {
			continue
		}
		select {
		case sub.C <- c:
		default:
			// channel 已满，跳过
		}
	}
}

// SubscriberCount 某张表当前的订阅数（监控用）
func (h *Hub) SubscriberCount(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[table])
}
