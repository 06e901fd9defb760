package jobs

import (
	DB "Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/utils"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

const TypeCloseSurvey = "survey:close"
const TypeCloseExpiredSweep = "survey:close_expired"

type SurveyPayload struct {
	SurveyID string `json:"survey_id"`
}

func NewCloseSurveyTask(surveyID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SurveyPayload{SurveyID: surveyID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCloseSurvey, payload), nil
}

func NewCloseExpiredSweepTask() *asynq.Task {
	return asynq.NewTask(TypeCloseExpiredSweep, nil)
}

// ScheduleSurveyClose ตั้ง task ปิดแบบสำรวจตอนสิ้นวันของ endDate
// การเช็คตอนอ่าน (opportunistic) ยังเป็นกลไกหลัก — task นี้เป็นตัวเสริม
// เผื่อไม่มีใครอ่าน survey นั้นเลยหลังหมดเขต ทั้งสองทาง idempotent
func ScheduleSurveyClose(surveyID string, endDate time.Time) {
	if DB.AsynqClient == nil {
		log.Println("⚠️ Redis/Asynq not available → skip scheduling close task")
		return
	}

	runAt := utils.EndOfDay(endDate)
	if runAt.Before(time.Now()) {
		// เลยกำหนดแล้ว — ให้ inline check ตอนอ่านจัดการ
		return
	}

	task, err := NewCloseSurveyTask(surveyID)
	if err != nil {
		log.Println("close task: create failed:", err)
		return
	}

	// TaskID ผูกกับวันสิ้นสุด — ขยาย endDate แล้วจะได้ task ใหม่ไม่ชนของเดิม
	taskID := "close-survey-" + surveyID + "-" + endDate.Format("2006-01-02")
	if _, err := DB.AsynqClient.Enqueue(
		task,
		asynq.ProcessAt(runAt),
		asynq.TaskID(taskID),
	); err != nil {
		log.Println("close task: enqueue failed:", err)
	} else {
		log.Printf("✅ scheduled survey close: %s at %s", taskID, runAt.Format(time.RFC3339))
	}
}

// EnqueueCloseExpiredSweep สั่ง sweep ปิดแบบสำรวจหมดอายุทันที (on-demand)
func EnqueueCloseExpiredSweep() error {
	if DB.AsynqClient == nil {
		log.Println("⚠️ Redis/Asynq not available → skip sweep enqueue")
		return nil
	}
	_, err := DB.AsynqClient.Enqueue(NewCloseExpiredSweepTask())
	return err
}
