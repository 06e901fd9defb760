package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team ทีมของ field agent — มี supervisor ได้ทีมละหนึ่งคน (nullable)
// สมาชิกหนึ่งคนอยู่ได้ทีมเดียว (บังคับตอน AddMember)
type Team struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	SupervisorID *primitive.ObjectID  `bson:"supervisorId,omitempty" json:"supervisorId,omitempty"`
	Members      []primitive.ObjectID `bson:"members" json:"members"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CreateTeamRequest payload สำหรับสร้างทีม
type CreateTeamRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	SupervisorID string `json:"supervisorId"`
}
