package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// สถานะของ Survey — closed เป็นสถานะสุดท้าย ออกไม่ได้
const (
	SurveyStatusDraft  = "draft"
	SurveyStatusActive = "active"
	SurveyStatusPaused = "paused"
	SurveyStatusClosed = "closed"
)

// ValidSurveyStatus ตรวจสอบว่า status อยู่ใน enum หรือไม่
func ValidSurveyStatus(status string) bool {
	switch status {
	case SurveyStatusDraft, SurveyStatusActive, SurveyStatusPaused, SurveyStatusClosed:
		return true
	}
	return false
}

// ประเภทคำถามที่ระบบรู้จัก (ค่า config ของแต่ละประเภทเป็น opaque)
const (
	QuestionTypeText            = "text"
	QuestionTypeEmail           = "email"
	QuestionTypePhone           = "phone"
	QuestionTypeNPS             = "nps"
	QuestionTypeCSAT            = "csat"
	QuestionTypeCES             = "ces"
	QuestionTypeMultipleChoice  = "multiple_choice"
	QuestionTypeCheckbox        = "checkbox"
	QuestionTypeScale           = "scale"
	QuestionTypeGeolocation     = "geolocation"
	QuestionTypeAreaMeasurement = "area_measurement"
	QuestionTypeDate            = "date"
	QuestionTypeTime            = "time"
)

// Survey แบบสำรวจ พร้อมคำถามแบบฝังใน document เดียว
type Survey struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title           string               `bson:"title" json:"title"`
	Description     string               `bson:"description" json:"description"`
	Questions       []Question           `bson:"questions" json:"questions"`
	Status          string               `bson:"status" json:"status"`
	TargetResponses int                  `bson:"targetResponses" json:"targetResponses"`
	ResponseCount   int                  `bson:"responseCount" json:"responseCount"`
	StartDate       *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate         *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	OriginalEndDate *time.Time           `bson:"originalEndDate,omitempty" json:"originalEndDate,omitempty"`
	AutoClosedAt    *time.Time           `bson:"autoClosedAt,omitempty" json:"autoClosedAt,omitempty"`
	CreatedBy       primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo      []primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	Settings        SurveySettings       `bson:"settings" json:"settings"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Question คำถามในแบบสำรวจ — ID เป็น string คงที่ (uuid ถ้า server สร้างให้)
type Question struct {
	ID         string         `bson:"id" json:"id"`
	Type       string         `bson:"type" json:"type"`
	Label      string         `bson:"label" json:"label"`
	Required   bool           `bson:"required" json:"required"`
	Order      int            `bson:"order" json:"order"`
	Options    []string       `bson:"options,omitempty" json:"options,omitempty"`
	Validation map[string]any `bson:"validation,omitempty" json:"validation,omitempty"`
	// Conditional logic / file / slider / matrix configs — ไม่ตีความใน analytics core
	Config map[string]any `bson:"config,omitempty" json:"config,omitempty"`
}

// SurveySettings ค่า flag ต่าง ๆ ของแบบสำรวจ
type SurveySettings struct {
	AllowAnonymous         bool `bson:"allowAnonymous" json:"allowAnonymous"`
	RequireGeolocation     bool `bson:"requireGeolocation" json:"requireGeolocation"`
	AllowOfflineSubmission bool `bson:"allowOfflineSubmission" json:"allowOfflineSubmission"`
	ShowProgressBar        bool `bson:"showProgressBar" json:"showProgressBar"`
	RandomizeQuestions     bool `bson:"randomizeQuestions" json:"randomizeQuestions"`
}

// CreateSurveyRequest payload สำหรับสร้างแบบสำรวจใหม่
type CreateSurveyRequest struct {
	Title           string         `json:"title" validate:"required,min=1"`
	Description     string         `json:"description"`
	Questions       []Question     `json:"questions" validate:"required,min=1,dive"`
	TargetResponses int            `json:"targetResponses" validate:"gte=0"`
	StartDate       *time.Time     `json:"startDate"`
	EndDate         *time.Time     `json:"endDate"`
	AssignedTo      []string       `json:"assignedTo"`
	Settings        SurveySettings `json:"settings"`
}

// UpdateSurveyStatusRequest เปลี่ยนสถานะแบบสำรวจ
type UpdateSurveyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active paused closed"`
}

// ExtendSurveyRequest ขยายวันสิ้นสุดของแบบสำรวจ
type ExtendSurveyRequest struct {
	EndDate time.Time `json:"endDate" validate:"required"`
}

// AssignAgentsRequest กำหนด field agent ให้แบบสำรวจ
type AssignAgentsRequest struct {
	AgentIDs []string `json:"agentIds" validate:"required,min=1,dive,required"`
}
