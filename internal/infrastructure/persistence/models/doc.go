// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel with the integer identity and timestamps
// - slide.go: carousel_slides
// - promo_message.go: product_promo_messages
package models
