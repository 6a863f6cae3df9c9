package service

import (
	"context"
	"errors"
	"log"
	"time"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
	"buysini_admin_202601/pkg/utils"
)

// ==================== 错误定义 ====================

var ErrSettingNotFound = errors.New("设置项不存在")

// ==================== SettingService 站点设置服务 ====================

// SettingService 站点设置服务
// 读多写少，单键读取走 TTL 缓存；写入后失效对应键并广播变更
type SettingService struct {
	settingRepo repository.SettingRepository
	cache       *utils.TTLCache
	hub         *realtime.Hub
}

// NewSettingService 创建站点设置服务
func NewSettingService(settingRepo repository.SettingRepository, hub *realtime.Hub) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		cache:       utils.NewTTLCache(5 * time.Minute),
		hub:         hub,
	}
}

// ==================== 读取 ====================

// GetAll 全部设置
func (s *SettingService) GetAll(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	resps := make([]dto.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		resps = append(resps, toSettingResponse(&setting))
	}
	return resps, nil
}

// GetValue 按 key 读取设置值（带缓存）
func (s *SettingService) GetValue(ctx context.Context, key string) (string, error) {
	if value, ok := s.cache.Get(key); ok {
		return value, nil
	}

	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", ErrSettingNotFound
	}

	s.cache.Set(key, setting.Value)
	return setting.Value, nil
}

// ==================== 写入 ====================

// Upsert 写入单个设置项
// 首选原子 upsert；老库缺唯一索引时退化为读改写
func (s *SettingService) Upsert(ctx context.Context, req *dto.UpsertSettingRequest) (*dto.SettingResponse, error) {
	settingType := req.Type
	if settingType == "" {
		settingType = model.SettingTypeText
	}

	setting := &model.Setting{
		Key:         req.Key,
		Value:       req.Value,
		Type:        settingType,
		Description: req.Description,
	}

	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		log.Printf("[Setting] upsert 失败，退化为读改写 key=%s: %v", req.Key, err)
		if err := s.upsertFallback(ctx, setting); err != nil {
			return nil, err
		}
	}

	s.cache.Delete(req.Key)

	s.hub.Publish(realtime.Change{
		Table: "settings",
		Event: realtime.EventUpdate,
		RowID: setting.ID,
	})

	resp := toSettingResponse(setting)
	return &resp, nil
}

// BatchUpsert 批量写入（设置页整页保存）
func (s *SettingService) BatchUpsert(ctx context.Context, req *dto.BatchUpsertSettingsRequest) error {
	for i := range req.Settings {
		if _, err := s.Upsert(ctx, &req.Settings[i]); err != nil {
			return err
		}
	}
	return nil
}

// upsertFallback 读改写回退路径
func (s *SettingService) upsertFallback(ctx context.Context, setting *model.Setting) error {
	existing, err := s.settingRepo.GetByKey(ctx, setting.Key)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.settingRepo.Create(ctx, setting)
	}

	setting.ID = existing.ID
	return s.settingRepo.UpdateValue(ctx, setting.Key, setting.Value)
}

// Delete 删除设置项
func (s *SettingService) Delete(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return s.settingRepo.Delete(ctx, key)
}

// toSettingResponse 转换为响应 DTO
func toSettingResponse(setting *model.Setting) dto.SettingResponse {
	return dto.SettingResponse{
		Key:         setting.Key,
		Value:       setting.Value,
		Type:        setting.Type,
		Description: setting.Description,
	}
}
