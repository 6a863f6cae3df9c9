package dto

// ==================== 站点设置 ====================

// UpsertSettingRequest 写入单个设置项
type UpsertSettingRequest struct {
	Key         string `json:"key" binding:"required,max=100"`
	Value       string `json:"value"`
	Type        string `json:"type" binding:"omitempty,oneof=text image color json"`
	Description string `json:"description"`
}

// BatchUpsertSettingsRequest 批量写入设置
// 设置页保存时一次提交整页字段
type BatchUpsertSettingsRequest struct {
	Settings []UpsertSettingRequest `json:"settings" binding:"required,min=1"`
}

// UploadImageRequest 上传 base64 图片
type UploadImageRequest struct {
	Data   string `json:"data" binding:"required"`
	Prefix string `json:"prefix" binding:"omitempty,max=50"`
}

// SettingResponse 设置项响应
type SettingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
