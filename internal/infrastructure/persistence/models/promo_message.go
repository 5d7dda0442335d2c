package models

import (
	"github.com/storefront/backend/internal/domain/promotion"
)

// PromoMessageModel is the persistence model for promotional banner messages.
// Columns carry no gorm defaults so an explicit false is_active is written as is.
type PromoMessageModel struct {
	BaseModel
	Message  string          `gorm:"column:message;type:text;not null"`
	Theme    promotion.Theme `gorm:"column:theme;type:varchar(20);not null"`
	Color    string          `gorm:"column:color;type:varchar(7);not null"`
	IsActive bool            `gorm:"column:is_active;not null"`
}

// TableName returns the table name for GORM
func (PromoMessageModel) TableName() string {
	return "product_promo_messages"
}

// ToDomain converts the persistence model to a domain PromoMessage
func (m *PromoMessageModel) ToDomain() *promotion.PromoMessage {
	return &promotion.PromoMessage{
		BaseEntity: m.BaseModel.ToDomain(),
		Message:    m.Message,
		Theme:      m.Theme,
		Color:      m.Color,
		IsActive:   m.IsActive,
	}
}

// PromoMessageModelFromData builds a new, unsaved model
func PromoMessageModelFromData(data promotion.PromoData) *PromoMessageModel {
	return &PromoMessageModel{
		Message:  data.Message,
		Theme:    data.Theme,
		Color:    data.Color,
		IsActive: data.IsActive,
	}
}
