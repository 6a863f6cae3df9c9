package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
)

// ==================== 菜单注册表 ====================

// 侧边栏菜单，顺序即展示顺序
// orders 是唯一带角标的项
var menuRegistry = []dto.MenuItemResponse{
	{Key: "dashboard", Label: "Dashboard", Icon: "layout-dashboard", Path: "/admin/dashboard"},
	{Key: "orders", Label: "Orders", Icon: "shopping-cart", Path: "/admin/orders"},
	{Key: "order_items", Label: "Order Items", Icon: "list-ordered", Path: "/admin/order-items"},
	{Key: "products", Label: "Products", Icon: "package", Path: "/admin/products"},
	{Key: "categories", Label: "Categories", Icon: "folder-tree", Path: "/admin/categories"},
	{Key: "customers", Label: "Customers", Icon: "users", Path: "/admin/customers"},
	{Key: "banners", Label: "Banners", Icon: "image", Path: "/admin/banners"},
	{Key: "promos", Label: "Promos", Icon: "ticket-percent", Path: "/admin/promos"},
	{Key: "payments", Label: "Payment Methods", Icon: "credit-card", Path: "/admin/payments"},
	{Key: "shipping", Label: "Shipping Methods", Icon: "truck", Path: "/admin/shipping"},
	{Key: "settings", Label: "Settings", Icon: "settings", Path: "/admin/settings"},
	{Key: "admins", Label: "Admins", Icon: "shield", Path: "/admin/admins"},
}

// ==================== 折叠区域 ====================

// 可折叠区域
const (
	RegionSidebar       = "sidebar"
	RegionUserMenu      = "usermenu"
	RegionMobileSidebar = "mobile_sidebar"
	RegionSettingsMenu  = "settings_menu"
)

// regionState 每个会话一份的区域开合状态
type regionState struct {
	mu   sync.Mutex
	open map[string]bool
}

func newRegionState() *regionState {
	return &regionState{
		// 桌面侧边栏默认展开，其余默认收起
		open: map[string]bool{
			RegionSidebar:       true,
			RegionUserMenu:      false,
			RegionMobileSidebar: false,
			RegionSettingsMenu:  false,
		},
	}
}

// ==================== NavService 导航服务 ====================

// NavService 后台导航服务
// 管菜单、各会话的折叠区域状态，以及订单待处理角标。
// 角标计数增量维护：不为每次展示回表 count，
// 事件流断了有定时对账兜底（Reconcile）。
type NavService struct {
	orderRepo repository.OrderRepository
	hub       *realtime.Hub

	// 待处理角标
	counterMu    sync.RWMutex
	pendingCount int64

	// 角标变更推送
	watcherMu sync.RWMutex
	watchers  []chan int64

	// 折叠区域状态，按会话隔离
	regionMu sync.Mutex
	regions  map[string]*regionState // sid -> 状态

	stop chan struct{}
}

// NewNavService 创建导航服务
func NewNavService(orderRepo repository.OrderRepository, hub *realtime.Hub) *NavService {
	return &NavService{
		orderRepo: orderRepo,
		hub:       hub,
		regions:   make(map[string]*regionState),
		stop:      make(chan struct{}),
	}
}

// ==================== 启动 / 停止 ====================

// Start 初始化角标并开始监听订单变更
// 先查一次真实 pending 数作为基线，再在事件流上做增量
func (s *NavService) Start(ctx context.Context) error {
	count, err := s.orderRepo.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return err
	}

	s.counterMu.Lock()
	s.pendingCount = count
	s.counterMu.Unlock()

	sub := s.hub.Subscribe("orders", nil)
	go s.consume(sub)

	log.Printf("[Nav] 角标初始化完成, pending=%d", count)
	return nil
}

// Stop 停止监听
func (s *NavService) Stop() {
	close(s.stop)
}

// consume 消费订单变更事件，维护角标
func (s *NavService) consume(sub *realtime.Subscription) {
	defer s.hub.Unsubscribe(sub)

	for {
		select {
		case <-s.stop:
			return
		case c, ok := <-sub.C:
			if !ok {
				return
			}
			s.apply(c)
		}
	}
}

// apply 把一条变更折算成角标增量
//   - 新增 pending 订单 → +1
//   - 状态离开 pending → -1（托底不减到负数）
//   - 状态回到 pending → +1
//   - 删除 pending 订单 → -1
func (s *NavService) apply(c realtime.Change) {
	var delta int64

	switch c.Event {
	case realtime.EventInsert:
		if c.Status == model.OrderStatusPending {
			delta = 1
		}
	case realtime.EventUpdate:
		wasPending := c.OldStatus == model.OrderStatusPending
		isPending := c.Status == model.OrderStatusPending
		switch {
		case wasPending && !isPending:
			delta = -1
		case !wasPending && isPending:
			delta = 1
		}
	case realtime.EventDelete:
		if c.Status == model.OrderStatusPending {
			delta = -1
		}
	}

	if delta == 0 {
		return
	}

	s.counterMu.Lock()
	s.pendingCount += delta
	if s.pendingCount < 0 {
		s.pendingCount = 0
	}
	current := s.pendingCount
	s.counterMu.Unlock()

	s.broadcast(current)
}

// ==================== 角标读取 / 确认 / 对账 ====================

// PendingCount 当前待处理数
func (s *NavService) PendingCount() int64 {
	s.counterMu.RLock()
	defer s.counterMu.RUnlock()
	return s.pendingCount
}

// Acknowledge 管理员点开订单页后清零角标
// 角标语义是"上次查看以来的新动静"，不是未处理订单总数
func (s *NavService) Acknowledge() {
	s.counterMu.Lock()
	s.pendingCount = 0
	s.counterMu.Unlock()

	s.broadcast(0)
}

// Reconcile 用数据库真实值校准角标（定时任务调用）
// 事件丢失或进程重启后靠这里拉回正轨
func (s *NavService) Reconcile(ctx context.Context) error {
	count, err := s.orderRepo.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return err
	}

	s.counterMu.Lock()
	changed := s.pendingCount != count
	s.pendingCount = count
	s.counterMu.Unlock()

	if changed {
		log.Printf("[Nav] 角标对账校准为 %d", count)
		s.broadcast(count)
	}
	return nil
}

// ==================== 角标订阅（SSE 推流用） ====================

// WatchCounter 订阅角标变化
func (s *NavService) WatchCounter() chan int64 {
	s.watcherMu.Lock()
	defer s.watcherMu.Unlock()

	ch := make(chan int64, 8)
	s.watchers = append(s.watchers, ch)
	return ch
}

// UnwatchCounter 取消订阅
func (s *NavService) UnwatchCounter(ch chan int64) {
	s.watcherMu.Lock()
	defer s.watcherMu.Unlock()

	for i, w := range s.watchers {
		if w == ch {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			close(ch)
			break
		}
	}
}

// broadcast 推送最新角标值
func (s *NavService) broadcast(count int64) {
	s.watcherMu.RLock()
	defer s.watcherMu.RUnlock()

	for _, ch := range s.watchers {
		select {
		case ch <- count:
		default:
			// channel 已满，跳过
		}
	}
}

// ==================== 菜单 ====================

// Menu 返回侧边栏菜单，订单项带上当前角标
func (s *NavService) Menu(activePath string) *dto.NavStateResponse {
	count := s.PendingCount()

	menu := make([]dto.MenuItemResponse, len(menuRegistry))
	copy(menu, menuRegistry)
	for i := range menu {
		if menu[i].Key == "orders" {
			menu[i].Badge = count
		}
	}

	return &dto.NavStateResponse{
		Menu:         menu,
		PendingCount: count,
		ActivePath:   activePath,
	}
}

// PageTitle 按路由前缀查页面标题，没命中返回空串
func (s *NavService) PageTitle(path string) string {
	var best dto.MenuItemResponse
	for _, item := range menuRegistry {
		if strings.HasPrefix(path, item.Path) && len(item.Path) > len(best.Path) {
			best = item
		}
	}
	return best.Label
}

// ==================== 折叠区域状态 ====================

// sessionRegions 取某会话的区域状态，没有就建默认的
func (s *NavService) sessionRegions(sid string) *regionState {
	s.regionMu.Lock()
	defer s.regionMu.Unlock()

	rs, ok := s.regions[sid]
	if !ok {
		rs = newRegionState()
		s.regions[sid] = rs
	}
	return rs
}

// SetRegion 记录某区域的开合
func (s *NavService) SetRegion(sid, region string, open bool) {
	rs := s.sessionRegions(sid)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.open[region] = open
}

// Regions 读取某会话全部区域状态
func (s *NavService) Regions(sid string) map[string]bool {
	rs := s.sessionRegions(sid)

	rs.mu.Lock()
	defer rs.mu.Unlock()

	out := make(map[string]bool, len(rs.open))
	for k, v := range rs.open {
		out[k] = v
	}
	return out
}

// OnRouteChange 路由切换钩子
// 移动端侧边栏是遮罩式的，切页面必须收起来；用户菜单同理
func (s *NavService) OnRouteChange(sid, path string) {
	rs := s.sessionRegions(sid)

	rs.mu.Lock()
	rs.open[RegionMobileSidebar] = false
	rs.open[RegionUserMenu] = false
	rs.open[RegionSettingsMenu] = false
	rs.mu.Unlock()

	// 进入订单页视为已查看，清零角标
	if strings.HasPrefix(path, "/admin/orders") {
		s.Acknowledge()
	}
}

// DropSession 会话登出后清掉它的区域状态
func (s *NavService) DropSession(sid string) {
	s.regionMu.Lock()
	defer s.regionMu.Unlock()
	delete(s.regions, sid)
}
