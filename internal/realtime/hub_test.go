package realtime

import (
	"testing"
	"time"
)

func recvOne(t *testing.T, sub *Subscription) Change {
	t.Helper()
	select {
	case c := <-sub.C:
		return c
	case <-time.After(time.Second):
		t.Fatal("等待事件超时")
		return Change{}
	}
}

func TestHub_PublishSubscribe(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe("orders", nil)
	defer h.Unsubscribe(sub)

	h.Publish(Change{Table: "orders", Event: EventInsert, RowID: 1, Status: "pending"})

	got := recvOne(t, sub)
	if got.Event != EventInsert || got.RowID != 1 {
		t.Errorf("got = %+v", got)
	}
}

func TestHub_FilterByStatus(t *testing.T) {
	h := NewHub()

	// 只订阅 pending 插入事件
	sub := h.Subscribe("orders", func(c Change) bool {
		return c.Event == EventInsert && c.Status == "pending"
	})
	defer h.Unsubscribe(sub)

	h.Publish(Change{Table: "orders", Event: EventInsert, RowID: 1, Status: "shipped"})
	h.Publish(Change{Table: "orders", Event: EventInsert, RowID: 2, Status: "pending"})

	got := recvOne(t, sub)
	if got.RowID != 2 {
		t.Errorf("过滤器应该只放行 pending 插入，got RowID = %d", got.RowID)
	}
}

func TestHub_TableIsolation(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe("settings", nil)
	defer h.Unsubscribe(sub)

	h.Publish(Change{Table: "orders", Event: EventInsert, RowID: 1})

	select {
	case c := <-sub.C:
		t.Errorf("settings 订阅不应收到 orders 事件: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe("orders", nil)
	h.Unsubscribe(sub)

	if n := h.SubscriberCount("orders"); n != 0 {
		t.Errorf("退订后订阅数 = %d, want 0", n)
	}

	// channel 应已关闭
	if _, ok := <-sub.C; ok {
		t.Error("退订后 channel 应关闭")
	}

	// 重复退订不应 panic
	h.Unsubscribe(sub)
}

// 投递是至多一次：订阅方消费不动时事件被丢弃，Publish 不能被拖住。
// 丢掉的计数由对账任务从数据库纠偏。
func TestHub_SlowSubscriberDropsWhenFull(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe("orders", nil)
	defer h.Unsubscribe(sub)

	total := cap(sub.C) + 4
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			h.Publish(Change{Table: "orders", Event: EventInsert, RowID: int64(i + 1), Status: "pending"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("订阅方堵住时 Publish 不应阻塞")
	}

	// 缓冲里只剩前 cap(sub.C) 条，且保持到达顺序
	for i := int64(1); i <= int64(cap(sub.C)); i++ {
		got := recvOne(t, sub)
		if got.RowID != i {
			t.Fatalf("got RowID = %d, want %d", got.RowID, i)
		}
	}
	select {
	case c := <-sub.C:
		t.Errorf("超出缓冲的事件应被丢弃: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ArrivalOrder(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe("orders", nil)
	defer h.Unsubscribe(sub)

	for i := int64(1); i <= 5; i++ {
		h.Publish(Change{Table: "orders", Event: EventInsert, RowID: i, Status: "pending"})
	}

	for i := int64(1); i <= 5; i++ {
		got := recvOne(t, sub)
		if got.RowID != i {
			t.Fatalf("事件应按到达顺序投递, got %d want %d", got.RowID, i)
		}
	}
}
