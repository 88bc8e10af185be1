package models

import "time"

type Survey struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	Creator     User       `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"-"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	Questions   []Question `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
