package analytics

import (
	"testing"
	"time"

	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, PeriodDay, NormalizePeriod("day"))
	assert.Equal(t, PeriodYear, NormalizePeriod("year"))
	// token ที่ไม่รู้จักต้อง fallback เป็น week ไม่ error
	assert.Equal(t, PeriodWeek, NormalizePeriod("quarter"))
	assert.Equal(t, PeriodWeek, NormalizePeriod(""))
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, utils.AppLocation())

	assert.Equal(t, now.AddDate(0, 0, -1), PeriodStart(PeriodDay, now))
	assert.Equal(t, now.AddDate(0, 0, -7), PeriodStart(PeriodWeek, now))
	assert.Equal(t, now.AddDate(0, -1, 0), PeriodStart(PeriodMonth, now))
	assert.Equal(t, now.AddDate(-1, 0, 0), PeriodStart(PeriodYear, now))
}

func TestBucketKey(t *testing.T) {
	ts := time.Date(2026, 8, 30, 14, 45, 0, 0, utils.AppLocation())

	// day → รายชั่วโมง, week/month → รายวัน, year → รายเดือน
	assert.Equal(t, "2026-08-30 14:00", BucketKey(PeriodDay, ts))
	assert.Equal(t, "2026-08-30", BucketKey(PeriodWeek, ts))
	assert.Equal(t, "2026-08-30", BucketKey(PeriodMonth, ts))
	assert.Equal(t, "2026-08", BucketKey(PeriodYear, ts))
}

func TestBuildTimeSeries(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, utils.AppLocation())

	at := func(daysAgo int, hour int) time.Time {
		return time.Date(2026, 8, 30-daysAgo, hour, 0, 0, 0, utils.AppLocation())
	}

	responses := []models.Response{
		{SubmittedAt: at(1, 9), NpsScore: fptr(9), CsatScore: fptr(4)},
		{SubmittedAt: at(1, 15), NpsScore: fptr(7)},
		{SubmittedAt: at(3, 10), CsatScore: fptr(5)},
		{SubmittedAt: at(10, 10), NpsScore: fptr(10)}, // นอกช่วง week — ต้องถูกตัดทิ้ง
	}

	series := BuildTimeSeries(responses, PeriodWeek, now)

	assert.Len(t, series, 2)
	// bucket เรียงตามเวลา เก่าก่อน
	assert.Equal(t, "2026-08-27", series[0].Bucket)
	assert.Equal(t, "2026-08-29", series[1].Bucket)

	assert.Equal(t, 1, series[0].Count)
	assert.Equal(t, 5.0, series[0].AvgCsat)
	assert.Equal(t, 0.0, series[0].AvgNps) // ไม่มี npsScore ใน bucket นี้

	assert.Equal(t, 2, series[1].Count)
	assert.Equal(t, 8.0, series[1].AvgNps)
	assert.Equal(t, 4.0, series[1].AvgCsat)
}

func TestBuildTimeSeriesEmpty(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, utils.AppLocation())
	series := BuildTimeSeries(nil, PeriodWeek, now)

	assert.NotNil(t, series)
	assert.Len(t, series, 0)
}

func TestPercentChange(t *testing.T) {
	t.Run("TestNormalChange", func(t *testing.T) {
		assert.Equal(t, 20.0, PercentChange(120, 100, 0))
		assert.Equal(t, -20.0, PercentChange(80, 100, 0))
		assert.Equal(t, 5.0, PercentChange(105, 100, 1))
	})

	// ช่วงก่อนเป็น 0: มีของใหม่ให้ 100 ไม่มีให้ 0
	t.Run("TestZeroBaseline", func(t *testing.T) {
		assert.Equal(t, 100.0, PercentChange(42, 0, 0))
		assert.Equal(t, 0.0, PercentChange(0, 0, 0))
	})

	t.Run("TestPrecision", func(t *testing.T) {
		// 1/3*100 = 33.333... → precision 1 ได้ 33.3
		assert.Equal(t, 33.3, PercentChange(4, 3, 1))
		assert.Equal(t, 33.0, PercentChange(4, 3, 0))
	})
}

func TestWeeklyActivity(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, utils.AppLocation())

	onDay := func(daysAgo int) models.Response {
		return models.Response{
			SubmittedAt: time.Date(2026, 8, 30-daysAgo, 10, 0, 0, 0, utils.AppLocation()),
		}
	}

	responses := []models.Response{
		onDay(0), onDay(0), onDay(0),
		onDay(2), onDay(2),
		onDay(8), // สัปดาห์ก่อน — ต้องไม่มาปนช่องวันเดียวกัน
	}

	activity := WeeklyActivity(responses, now)

	assert.Len(t, activity.Labels, 7)
	assert.Len(t, activity.Counts, 7)

	// เรียงเก่า → ใหม่ ช่องสุดท้ายคือวันนี้
	assert.Equal(t, "Sun", activity.Labels[6]) // 2026-08-30 เป็นวันอาทิตย์
	assert.Equal(t, 3, activity.Counts[6])
	assert.Equal(t, 2, activity.Counts[4])

	total := 0
	for _, c := range activity.Counts {
		total += c
	}
	assert.Equal(t, 5, total)
}
