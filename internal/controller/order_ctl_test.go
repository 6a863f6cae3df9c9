package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
	"buysini_admin_202601/internal/service"
)

// ==================== 测试辅助 ====================

// ctlStubProductRepo 内存商品仓库，避开 sqlite 不支持的数组列
type ctlStubProductRepo struct {
	repository.ProductRepository
	products map[int64]*model.Product
}

func (r *ctlStubProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return r.products[id], nil
}

func (r *ctlStubProductRepo) UpdateStock(ctx context.Context, id int64, delta int) error {
	return nil
}

type ctlStubCustomerRepo struct {
	repository.CustomerRepository
}

func (r *ctlStubCustomerRepo) IncrOrderStats(ctx context.Context, id int64, amount int64) error {
	return nil
}

func setupOrderCtlRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Order{}, &model.OrderItem{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}

	productRepo := &ctlStubProductRepo{
		products: map[int64]*model.Product{
			1: {
				BaseModel:   model.BaseModel{ID: 1},
				Name:        "Batik Shirt",
				PriceAmount: 25000,
				Stock:       10,
			},
		},
	}

	orderService := service.NewOrderService(
		repository.NewOrderRepository(db),
		productRepo,
		&ctlStubCustomerRepo{},
		realtime.NewHub(),
	)
	orderCtl := NewOrderController(orderService)

	r := gin.New()
	orders := r.Group("/api/orders")
	{
		orders.POST("", orderCtl.CreateOrder)
		orders.GET("", orderCtl.ListOrders)
		orders.GET("/:id", orderCtl.GetOrder)
		orders.PUT("/:id/status", orderCtl.UpdateStatus)
		orders.DELETE("/:id", orderCtl.DeleteOrder)
	}
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 测试用例 ====================

func TestOrderController_CreateAndGet(t *testing.T) {
	r := setupOrderCtlRouter(t)

	w := postJSON(t, r, "/api/orders", gin.H{
		"customer_name": "Dewi",
		"items":         []gin.H{{"product_id": 1, "quantity": 2}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var createResp struct {
		Data struct {
			ID               int64  `json:"id"`
			Status           string `json:"status"`
			GrandTotalAmount int64  `json:"grand_total_amount"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &createResp)

	if createResp.Data.Status != "pending" {
		t.Errorf("status = %s, want pending", createResp.Data.Status)
	}
	if createResp.Data.GrandTotalAmount != 50000 {
		t.Errorf("grand_total = %d, want 50000", createResp.Data.GrandTotalAmount)
	}

	// 详情
	req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, req)
	if getW.Code != http.StatusOK {
		t.Errorf("get status = %d", getW.Code)
	}
}

func TestOrderController_Create_MissingItems(t *testing.T) {
	r := setupOrderCtlRouter(t)

	w := postJSON(t, r, "/api/orders", gin.H{"customer_name": "Dewi"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestOrderController_Get_NotFound(t *testing.T) {
	r := setupOrderCtlRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestOrderController_Get_InvalidID(t *testing.T) {
	r := setupOrderCtlRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestOrderController_UpdateStatus_InvalidTransition(t *testing.T) {
	r := setupOrderCtlRouter(t)

	postJSON(t, r, "/api/orders", gin.H{
		"customer_name": "Dewi",
		"items":         []gin.H{{"product_id": 1, "quantity": 1}},
	})

	// pending 不能直接跳 delivered
	data, _ := json.Marshal(gin.H{"status": "delivered"})
	req := httptest.NewRequest(http.MethodPut, "/api/orders/1/status", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d, body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestOrderController_Delete(t *testing.T) {
	r := setupOrderCtlRouter(t)

	postJSON(t, r, "/api/orders", gin.H{
		"customer_name": "Dewi",
		"items":         []gin.H{{"product_id": 1, "quantity": 1}},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)
	if getW.Code != http.StatusNotFound {
		t.Errorf("删除后 status = %d, want %d", getW.Code, http.StatusNotFound)
	}
}
