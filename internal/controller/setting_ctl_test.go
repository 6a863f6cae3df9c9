package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
	"buysini_admin_202601/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func setupSettingCtlRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Setting{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}

	settingService := service.NewSettingService(repository.NewSettingRepository(db), realtime.NewHub())
	settingCtl := NewSettingController(settingService, nil)

	r := gin.New()
	settings := r.Group("/api/settings")
	{
		settings.GET("", settingCtl.GetSettings)
		settings.PUT("", settingCtl.UpsertSetting)
		settings.PUT("/batch", settingCtl.BatchUpsertSettings)
		settings.GET("/:key", settingCtl.GetSetting)
		settings.DELETE("/:key", settingCtl.DeleteSetting)
	}
	return r
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 测试用例 ====================

func TestSettingController_UpsertAndGet(t *testing.T) {
	router := setupSettingCtlRouter(t)

	w := performRequest(router, http.MethodPut, "/api/settings", gin.H{
		"key":   "site_name",
		"value": "Buysini",
		"type":  "text",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/api/settings/site_name", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Value string `json:"value"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Buysini", resp.Data.Value)
}

func TestSettingController_Upsert_MissingKey(t *testing.T) {
	router := setupSettingCtlRouter(t)

	w := performRequest(router, http.MethodPut, "/api/settings", gin.H{"value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingController_Upsert_InvalidType(t *testing.T) {
	router := setupSettingCtlRouter(t)

	w := performRequest(router, http.MethodPut, "/api/settings", gin.H{
		"key":  "theme",
		"type": "binary",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingController_Get_NotFound(t *testing.T) {
	router := setupSettingCtlRouter(t)

	w := performRequest(router, http.MethodGet, "/api/settings/missing_key", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingController_BatchUpsert(t *testing.T) {
	router := setupSettingCtlRouter(t)

	w := performRequest(router, http.MethodPut, "/api/settings/batch", gin.H{
		"settings": []gin.H{
			{"key": "site_name", "value": "Buysini"},
			{"key": "theme_color", "value": "#B45309", "type": "color"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Key string `json:"key"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Data, 2)
}

func TestSettingController_BatchUpsert_Empty(t *testing.T) {
	router := setupSettingCtlRouter(t)

	w := performRequest(router, http.MethodPut, "/api/settings/batch", gin.H{"settings": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingController_Delete(t *testing.T) {
	router := setupSettingCtlRouter(t)

	performRequest(router, http.MethodPut, "/api/settings", gin.H{"key": "tmp", "value": "1"})

	w := performRequest(router, http.MethodDelete, "/api/settings/tmp", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/api/settings/tmp", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
