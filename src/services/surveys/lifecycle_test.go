package surveys

import (
	"testing"
	"time"

	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/utils"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, utils.AppLocation())

	dateOnly := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, utils.AppLocation())
		return &v
	}

	t.Run("TestPastEndDate", func(t *testing.T) {
		survey := &models.Survey{
			Status:  models.SurveyStatusActive,
			EndDate: dateOnly(2026, 8, 29),
		}
		assert.True(t, IsExpired(survey, now))
	})

	// endDate เป็นวันตามปฏิทิน (inclusive) — วันนี้ยังเก็บคำตอบได้ถึงสิ้นวัน
	t.Run("TestEndDateTodayStillActive", func(t *testing.T) {
		survey := &models.Survey{
			Status:  models.SurveyStatusActive,
			EndDate: dateOnly(2026, 8, 30),
		}
		assert.False(t, IsExpired(survey, now))

		lastMoment := time.Date(2026, 8, 30, 23, 59, 59, 0, utils.AppLocation())
		assert.False(t, IsExpired(survey, lastMoment))
	})

	t.Run("TestEndDateTodayExpiresAfterMidnight", func(t *testing.T) {
		survey := &models.Survey{
			Status:  models.SurveyStatusActive,
			EndDate: dateOnly(2026, 8, 30),
		}
		nextMidnight := time.Date(2026, 8, 31, 0, 0, 0, 0, utils.AppLocation())
		assert.True(t, IsExpired(survey, nextMidnight))
	})

	t.Run("TestFutureEndDate", func(t *testing.T) {
		survey := &models.Survey{
			Status:  models.SurveyStatusActive,
			EndDate: dateOnly(2026, 9, 15),
		}
		assert.False(t, IsExpired(survey, now))
	})

	// ไม่มี endDate → เปิดไปเรื่อย ๆ ไม่มีวันหมดอายุ
	t.Run("TestNoEndDate", func(t *testing.T) {
		survey := &models.Survey{Status: models.SurveyStatusActive}
		assert.False(t, IsExpired(survey, now))
	})

	// หมดอายุได้เฉพาะ active เท่านั้น
	t.Run("TestNonActiveStatusesNeverExpire", func(t *testing.T) {
		for _, status := range []string{
			models.SurveyStatusDraft,
			models.SurveyStatusPaused,
			models.SurveyStatusClosed,
		} {
			survey := &models.Survey{
				Status:  status,
				EndDate: dateOnly(2026, 1, 1),
			}
			assert.False(t, IsExpired(survey, now), "status %s must not expire", status)
		}
	})
}

func TestCloseSurveyDocuments(t *testing.T) {
	// การปิดซ้ำต้องเป็น no-op: filter match เฉพาะ active เท่านั้น
	// ตัวที่ปิดไปแล้ว (status=closed) หลุดจาก filter → autoClosedAt เดิมไม่ถูกเขียนทับ
	t.Run("TestCloseFilterOnlyMatchesActive", func(t *testing.T) {
		id := primitive.NewObjectID()
		filter := closeFilter(id)

		assert.Equal(t, id, filter["_id"])
		assert.Equal(t, models.SurveyStatusActive, filter["status"])
		assert.Len(t, filter, 2)
	})

	t.Run("TestCloseUpdateSetsAutoClosedAt", func(t *testing.T) {
		now := time.Date(2026, 8, 30, 12, 0, 0, 0, utils.AppLocation())
		update := closeUpdate(now)

		set, ok := update["$set"].(bson.M)
		assert.True(t, ok)
		assert.Equal(t, models.SurveyStatusClosed, set["status"])
		assert.Equal(t, now, set["autoClosedAt"])
		assert.Equal(t, now, set["updatedAt"])
		// แก้แค่สามฟิลด์นี้ — endDate/originalEndDate ไม่ถูกแตะ
		assert.Len(t, set, 3)
	})
}
