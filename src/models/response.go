package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// สถานะของ Response
const (
	ResponseStatusCompleted   = "completed"
	ResponseStatusPartial     = "partial"
	ResponseStatusSynced      = "synced"
	ResponseStatusPendingSync = "pending_sync"
)

// ValidResponseStatus ตรวจสอบว่า status อยู่ใน enum หรือไม่
func ValidResponseStatus(status string) bool {
	switch status {
	case ResponseStatusCompleted, ResponseStatusPartial, ResponseStatusSynced, ResponseStatusPendingSync:
		return true
	}
	return false
}

// Response คำตอบหนึ่งชุดต่อแบบสำรวจ — สร้างครั้งเดียวตอน submit
// NpsScore / CsatScore / CesScore เป็นค่า derived จาก answers ตอนสร้าง
type Response struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SurveyID     primitive.ObjectID  `bson:"surveyId" json:"surveyId"`
	RespondentID *primitive.ObjectID `bson:"respondentId,omitempty" json:"respondentId,omitempty"`
	Answers      []Answer            `bson:"answers" json:"answers"`
	Location     *GeoPoint           `bson:"location,omitempty" json:"location,omitempty"`
	DeviceInfo   *DeviceInfo         `bson:"deviceInfo,omitempty" json:"deviceInfo,omitempty"`
	Metadata     *ResponseMetadata   `bson:"metadata,omitempty" json:"metadata,omitempty"`
	NpsScore     *float64            `bson:"npsScore,omitempty" json:"npsScore,omitempty"`
	CsatScore    *float64            `bson:"csatScore,omitempty" json:"csatScore,omitempty"`
	CesScore     *float64            `bson:"cesScore,omitempty" json:"cesScore,omitempty"`
	Status       string              `bson:"status" json:"status"`
	SubmittedAt  time.Time           `bson:"submittedAt" json:"submittedAt"`
}

// Answer คำตอบของคำถามหนึ่งข้อ — value เป็น opaque ตามประเภทคำถาม
type Answer struct {
	ID              string    `bson:"id" json:"id"`
	QuestionID      string    `bson:"questionId" json:"questionId"`
	QuestionType    string    `bson:"questionType" json:"questionType"`
	Value           any       `bson:"value" json:"value"`
	Geolocation     *GeoPoint `bson:"geolocation,omitempty" json:"geolocation,omitempty"`
	AreaMeasurement *float64  `bson:"areaMeasurement,omitempty" json:"areaMeasurement,omitempty"`
}

// GeoPoint พิกัด WGS84
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Accuracy  float64 `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
}

// DeviceInfo ข้อมูลอุปกรณ์ของ field agent ตอน submit
type DeviceInfo struct {
	Platform   string `bson:"platform,omitempty" json:"platform,omitempty"`
	Model      string `bson:"model,omitempty" json:"model,omitempty"`
	OSVersion  string `bson:"osVersion,omitempty" json:"osVersion,omitempty"`
	AppVersion string `bson:"appVersion,omitempty" json:"appVersion,omitempty"`
}

// ResponseMetadata ข้อมูลเวลาในการตอบ
type ResponseMetadata struct {
	StartedAt       *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt     *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	DurationSeconds int        `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	OfflineRecorded bool       `bson:"offlineRecorded,omitempty" json:"offlineRecorded,omitempty"`
}

// SubmitResponseRequest payload สำหรับ submit คำตอบ
type SubmitResponseRequest struct {
	SurveyID   string            `json:"surveyId" validate:"required"`
	Answers    []Answer          `json:"answers" validate:"required,min=1,dive"`
	Location   *GeoPoint         `json:"location"`
	DeviceInfo *DeviceInfo       `json:"deviceInfo"`
	Metadata   *ResponseMetadata `json:"metadata"`
	Status     string            `json:"status"`
}
