package jobs

import (
	DB "Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/services/surveys"
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleCloseSurveyTask ปิดแบบสำรวจตัวเดียวตอนถึงกำหนด endDate
// ใช้ lifecycle check เดิม — ถ้า survey ถูกขยายเวลาหรือปิดไปแล้วจะไม่ทำอะไร
func HandleCloseSurveyTask(ctx context.Context, t *asynq.Task) error {
	var payload SurveyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	id, err := primitive.ObjectIDFromHex(payload.SurveyID)
	if err != nil {
		log.Println("❌ Invalid survey id in payload:", payload.SurveyID)
		return nil // payload เสีย retry ไปก็ไม่หาย
	}

	survey, err := surveys.CheckAndCloseIfExpired(ctx, id)
	if err != nil {
		if err.Error() == "survey not found" {
			// ✅ ถูกลบไปแล้ว — ไม่ถือว่า error
			log.Println("⚠️ Survey not found. Possibly deleted. Skipping task:", id.Hex())
			return nil
		}
		return err
	}

	log.Printf("🎯 Close task evaluated survey %s (status=%s)", id.Hex(), survey.Status)
	return nil
}

// HandleCloseExpiredSweep ปิดแบบสำรวจหมดอายุทั้งหมดในรอบเดียว
func HandleCloseExpiredSweep(ctx context.Context, t *asynq.Task) error {
	closed := surveys.CloseExpiredSurveys(ctx)
	log.Printf("✅ Expiry sweep done, closed %d surveys", closed)
	return nil
}

// RegisterHandlers ผูก handler กับ task type ทั้งหมดของระบบ
func RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeCloseSurvey, HandleCloseSurveyTask)
	mux.HandleFunc(TypeCloseExpiredSweep, HandleCloseExpiredSweep)
}

// StartWorker รัน asynq worker ใน goroutine — ข้ามถ้าไม่มี Redis
func StartWorker() {
	if DB.RedisURI == "" || DB.RedisClient == nil {
		log.Println("⚠️ Redis not available. Asynq worker will not start.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: DB.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	RegisterHandlers(mux)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Asynq worker stopped:", err)
		}
	}()
	log.Println("✅ Asynq worker started")
}
