package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// AsynqClient ใช้ตั้ง task ปิดแบบสำรวจตามกำหนด endDate (jobs.ScheduleSurveyClose)
var AsynqClient *asynq.Client

// InitAsynq สร้าง client เมื่อ Redis พร้อมเท่านั้น
// ไม่มี Redis ระบบยังทำงานได้ — เหลือ inline expiry check ตอนอ่านเป็นกลไกเดียว
func InitAsynq() {
	if RedisClient == nil || RedisURI == "" {
		log.Println("⚠️ Redis not available → asynq disabled, survey close tasks will not be scheduled")
		return
	}

	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: RedisURI})
	log.Println("✅ Asynq client ready")
}
