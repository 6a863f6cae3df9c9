package model

// 设置值类型
const (
	SettingTypeText  = "text"
	SettingTypeImage = "image"
	SettingTypeColor = "color"
	SettingTypeJSON  = "json"
)

// Setting 站点设置（key-value）
// 站点名、联系方式、主题色等都走这张表，前台/后台共用
type Setting struct {
	BaseModel

	Key         string `gorm:"size:100;uniqueIndex;not null"`
	Value       string `gorm:"type:text"`
	Type        string `gorm:"size:20;default:'text'"` // text, image, color, json
	Description string `gorm:"size:255"`
}

func (Setting) TableName() string {
	return "settings"
}
