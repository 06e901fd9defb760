package surveys

import (
	DB "Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsExpired แบบสำรวจหมดอายุเมื่อ active และเลย 23:59:59.999 ของ endDate ไปแล้ว
// endDate เป็นวันตามปฏิทิน (inclusive) — วันนี้ยังไม่หมดอายุจนกว่าจะพ้นสิ้นวัน
func IsExpired(survey *models.Survey, now time.Time) bool {
	if survey.Status != models.SurveyStatusActive || survey.EndDate == nil {
		return false
	}
	return utils.EndOfDay(*survey.EndDate).Before(now)
}

// closeFilter match เฉพาะตัวที่ยัง active — ตัวที่ปิดแล้วหลุดจาก filter
// ทำให้การปิดซ้ำเป็น no-op และ autoClosedAt เดิมไม่ถูกแตะ
func closeFilter(surveyID primitive.ObjectID) bson.M {
	return bson.M{"_id": surveyID, "status": models.SurveyStatusActive}
}

func closeUpdate(now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"status":       models.SurveyStatusClosed,
		"autoClosedAt": now,
		"updatedAt":    now,
	}}
}

// closeSurvey ปิดแบบสำรวจหนึ่งตัวแบบ idempotent
func closeSurvey(ctx context.Context, surveyID primitive.ObjectID, now time.Time) (bool, error) {
	res, err := DB.SurveyCollection.UpdateOne(ctx, closeFilter(surveyID), closeUpdate(now))
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// checkAndApplyExpiry ประเมินหมดอายุของ survey ที่อ่านมาแล้วหนึ่งตัว
// ถ้าปิดสำเร็จ คืนสถานะใหม่โดยไม่อ่าน DB ซ้ำ — กันการวนกลับเข้า read path เดิม
// persist ล้มเหลวแค่ log แล้วคืนข้อมูลเดิม ไม่ทำให้การอ่าน fail
func checkAndApplyExpiry(ctx context.Context, survey *models.Survey) *models.Survey {
	now := time.Now()
	if !IsExpired(survey, now) {
		return survey
	}

	closed, err := closeSurvey(ctx, survey.ID, now)
	if err != nil {
		log.Printf("⚠️ Failed to auto-close survey %s: %v", survey.ID.Hex(), err)
		return survey
	}
	if closed {
		log.Printf("✅ Survey auto-closed: %s", survey.ID.Hex())
	}

	survey.Status = models.SurveyStatusClosed
	survey.AutoClosedAt = &now
	return survey
}

// CheckAndCloseIfExpired ประเมินหมดอายุของแบบสำรวจเดียวจาก id
// ใช้ทั้งจาก read path และจาก asynq task ตอนถึงกำหนด endDate
func CheckAndCloseIfExpired(ctx context.Context, surveyID primitive.ObjectID) (*models.Survey, error) {
	return GetSurveyByID(ctx, surveyID)
}

// CloseExpiredSurveys ปิดแบบสำรวจ active ที่เลยกำหนดทั้งหมด คืนจำนวนที่ปิดได้
// แต่ละตัว persist แยกกัน — ตัวหนึ่งพังต้องไม่ขวางตัวอื่น และไม่ล้ม read ที่เรียกมา
func CloseExpiredSurveys(ctx context.Context) int {
	now := time.Now()

	cursor, err := DB.SurveyCollection.Find(ctx, bson.M{
		"status":  models.SurveyStatusActive,
		"endDate": bson.M{"$ne": nil},
	})
	if err != nil {
		log.Printf("⚠️ Failed to list candidate surveys for expiry: %v", err)
		return 0
	}
	defer cursor.Close(ctx)

	var candidates []models.Survey
	if err := cursor.All(ctx, &candidates); err != nil {
		log.Printf("⚠️ Failed to decode candidate surveys for expiry: %v", err)
		return 0
	}

	closedCount := 0
	for i := range candidates {
		if !IsExpired(&candidates[i], now) {
			continue
		}
		closed, err := closeSurvey(ctx, candidates[i].ID, now)
		if err != nil {
			log.Printf("⚠️ Failed to auto-close survey %s: %v", candidates[i].ID.Hex(), err)
			continue
		}
		if closed {
			closedCount++
			log.Printf("✅ Survey auto-closed: %s", candidates[i].ID.Hex())
		}
	}
	return closedCount
}
