package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// ==================== 错误定义 ====================

var (
	ErrNoSession      = errors.New("未登录")
	ErrCorruptSession = errors.New("会话数据损坏")
)

// ==================== 变更事件 ====================

// 会话变更事件类型
const (
	EventWritten = "written"
	EventCleared = "cleared"
)

// Event 会话变更通知
type Event struct {
	SID  string
	Type string
}

// ==================== Provider 会话提供者 ====================

// Provider 统一的会话状态入口
// 读/写/订阅/清除都走这里，业务代码不直接摸存储键，
// 避免历史上散落各处的键名读取再次失控
type Provider struct {
	persistent Store // 持久存储（Redis），登录凭据主副本
	scoped     Store // 会话级存储（内存），进程结束即失效
	ttl        time.Duration

	subscriberMutex sync.RWMutex
	subscribers     map[string][]chan Event // sid -> 订阅列表
}

// NewProvider 创建会话提供者
// ttl 为会话有效期，写入的所有键共用
func NewProvider(persistent, scoped Store, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Provider{
		persistent:  persistent,
		scoped:      scoped,
		ttl:         ttl,
		subscribers: make(map[string][]chan Event),
	}
}

// ==================== 读 / 写 / 清除 ====================

// Write 写入一次成功登录的全部凭据
// 要么会话记录和令牌都写入，要么一个都不留：
// 令牌写失败时回滚已写入的会话记录，不允许半截状态
func (p *Provider) Write(ctx context.Context, sid string, rec *Record, token string) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := p.persistent.Set(ctx, sid, KeySession, string(data), p.ttl); err != nil {
		return err
	}
	if err := p.persistent.Set(ctx, sid, KeyToken, token, p.ttl); err != nil {
		_ = p.persistent.Delete(ctx, sid, KeySession)
		return err
	}

	p.notify(Event{SID: sid, Type: EventWritten})
	return nil
}

// Read 读取并校验会话记录
// 键不存在 → ErrNoSession；
// 解析失败或不变式不满足 → 清空全部凭据键后返回 ErrCorruptSession
// （损坏会话就地静默处理，调用方只需要引导重新登录）
func (p *Provider) Read(ctx context.Context, sid string) (*Record, error) {
	raw, err := p.persistent.Get(ctx, sid, KeySession)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		p.Clear(ctx, sid)
		return nil, ErrCorruptSession
	}
	if !rec.Valid() {
		p.Clear(ctx, sid)
		return nil, ErrCorruptSession
	}

	return &rec, nil
}

// Token 读取访问令牌
func (p *Provider) Token(ctx context.Context, sid string) (string, error) {
	token, err := p.persistent.Get(ctx, sid, KeyToken)
	if errors.Is(err, ErrKeyNotFound) {
		return "", ErrNoSession
	}
	return token, err
}

// Clear 清除该会话的全部凭据键
// 持久和会话级两边都清，包括历史别名；尽力而为，不因单边失败中断
func (p *Provider) Clear(ctx context.Context, sid string) {
	keys := CredentialKeys()
	_ = p.persistent.Delete(ctx, sid, keys...)
	_ = p.scoped.Delete(ctx, sid, keys...)

	p.notify(Event{SID: sid, Type: EventCleared})
}

// ==================== 订阅 ====================

// Subscribe 订阅某个会话的变更
func (p *Provider) Subscribe(sid string) chan Event {
	p.subscriberMutex.Lock()
	defer p.subscriberMutex.Unlock()

	ch := make(chan Event, 4)
	p.subscribers[sid] = append(p.subscribers[sid], ch)
	return ch
}

// Unsubscribe 取消订阅
func (p *Provider) Unsubscribe(sid string, ch chan Event) {
	p.subscriberMutex.Lock()
	defer p.subscriberMutex.Unlock()

	subs := p.subscribers[sid]
	for i, sub := range subs {
		if sub == ch {
			p.subscribers[sid] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(p.subscribers[sid]) == 0 {
		delete(p.subscribers, sid)
	}
}

// notify 推送变更事件
func (p *Provider) notify(event Event) {
	p.subscriberMutex.RLock()
	defer p.subscriberMutex.RUnlock()

	for _, ch := range p.subscribers[event.SID] {
		select {
		case ch <- event:
		default:
			// channel 已满，跳过
		}
	}
}

// ==================== 维护 ====================

// Sweeper 支持过期清理的存储
type Sweeper interface {
	Sweep() int
}

// SweepScoped 清理会话级存储的过期条目（定时任务调用）
func (p *Provider) SweepScoped() int {
	if s, ok := p.scoped.(Sweeper); ok {
		return s.Sweep()
	}
	return 0
}
