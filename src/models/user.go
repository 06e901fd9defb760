package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// บทบาทผู้ใช้ในระบบ
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleFieldAgent = "field_agent"
)

// ValidRole ตรวจสอบว่า role อยู่ใน enum หรือไม่
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleFieldAgent:
		return true
	}
	return false
}

// User ผู้ใช้งานระบบ
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"password,omitempty"` // ✅ เคลียร์ทิ้งก่อนตอบกลับเสมอ
	Role     string             `bson:"role" json:"role"`
}

// Caller ตัวตนของผู้เรียกที่ผ่าน auth แล้ว (จาก JWT middleware)
type Caller struct {
	ID   primitive.ObjectID `json:"id"`
	Role string             `json:"role"`
}
