package analytics

import (
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/utils"
	"sort"
	"time"
)

// ค่า period ของ time-series — token ไม่รู้จักจะ fallback เป็น week ไม่ใช่ error
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// NormalizePeriod คืน period ที่ใช้ได้เสมอ
func NormalizePeriod(period string) string {
	switch period {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return period
	}
	return PeriodWeek
}

// PeriodStart ขอบเริ่มของช่วง นับถอยหลังจากเวลาปัจจุบัน
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	}
	return now.AddDate(0, 0, -7)
}

// BucketKey รูปแบบ key ของ bucket ขึ้นกับ period
// day → รายชั่วโมง, week/month → รายวัน, year → รายเดือน
func BucketKey(period string, t time.Time) string {
	t = t.In(utils.AppLocation())
	switch period {
	case PeriodDay:
		return t.Format("2006-01-02 15:00")
	case PeriodYear:
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// BuildTimeSeries จัดกลุ่มคำตอบเป็น bucket ตามเวลา พร้อมค่าเฉลี่ย NPS/CSAT ต่อ bucket
// นับเฉพาะแถวที่ submittedAt อยู่ตั้งแต่ขอบเริ่มของช่วงเป็นต้นมา
func BuildTimeSeries(responses []models.Response, period string, now time.Time) []models.TimeSeriesPoint {
	start := PeriodStart(period, now)

	type bucketAgg struct {
		count     int
		npsSum    float64
		npsCount  int
		csatSum   float64
		csatCount int
	}

	buckets := make(map[string]*bucketAgg)
	order := make([]string, 0)

	for _, r := range responses {
		if r.SubmittedAt.Before(start) {
			continue
		}
		key := BucketKey(period, r.SubmittedAt)
		agg, ok := buckets[key]
		if !ok {
			agg = &bucketAgg{}
			buckets[key] = agg
			order = append(order, key)
		}
		agg.count++
		if r.NpsScore != nil {
			agg.npsSum += *r.NpsScore
			agg.npsCount++
		}
		if r.CsatScore != nil {
			agg.csatSum += *r.CsatScore
			agg.csatCount++
		}
	}

	// key เป็นรูปแบบวันที่เรียง lexicographic ได้ตรงกับเวลา
	sort.Strings(order)

	series := make([]models.TimeSeriesPoint, 0, len(order))
	for _, key := range order {
		agg := buckets[key]
		point := models.TimeSeriesPoint{Bucket: key, Count: agg.count}
		if agg.npsCount > 0 {
			point.AvgNps = Round2(agg.npsSum / float64(agg.npsCount))
		}
		if agg.csatCount > 0 {
			point.AvgCsat = Round2(agg.csatSum / float64(agg.csatCount))
		}
		series = append(series, point)
	}
	return series
}

// PercentChange เปอร์เซ็นต์การเปลี่ยนแปลงเทียบช่วงก่อน
// previous เป็น 0: current > 0 ให้ 100, ไม่งั้น 0
func PercentChange(current, previous float64, precision int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return roundTo((current-previous)/previous*100, precision)
}

// WeeklyActivity histogram 7 วันล่าสุดจบที่วันนี้ — key ด้วยวันที่จริง
// ไม่ใช่ชื่อวันในสัปดาห์ เพื่อกันคำตอบสัปดาห์ก่อนมาปนช่องเดียวกัน
func WeeklyActivity(responses []models.Response, now time.Time) models.WeeklyActivity {
	type dayBucket struct {
		label string
		date  string
	}

	days := make([]dayBucket, 0, 7)
	counts := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		d := utils.StartOfDay(now.AddDate(0, 0, -i))
		key := d.Format("2006-01-02")
		days = append(days, dayBucket{label: d.Format("Mon"), date: key})
		counts[key] = 0
	}

	for _, r := range responses {
		key := r.SubmittedAt.In(utils.AppLocation()).Format("2006-01-02")
		if _, ok := counts[key]; ok {
			counts[key]++
		}
	}

	activity := models.WeeklyActivity{
		Labels: make([]string, 0, 7),
		Counts: make([]int, 0, 7),
	}
	for _, d := range days {
		activity.Labels = append(activity.Labels, d.label)
		activity.Counts = append(activity.Counts, counts[d.date])
	}
	return activity
}
