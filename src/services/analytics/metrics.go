package analytics

import (
	"Backend-FieldSurvey-001/src/models"
	"math"
	"strconv"
)

// ฟังก์ชันคำนวณ metric ทั้งหมดเป็น pure function บน slice ของ response
// ที่ผ่านการกรองสิทธิ์มาแล้ว — ตัวหารเป็น 0 ให้ผลเป็น 0 เสมอ ห้ามมี NaN หลุด

// Round2 ปัดทศนิยม 2 ตำแหน่ง (round half away from zero)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundTo ปัดทศนิยมตามจำนวนตำแหน่งที่กำหนด
func roundTo(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}

// CalculateNPS แบ่งผู้ตอบเป็น promoter (>=9) / detractor (<=6) / passive
// คะแนน = (promoters - detractors) / total * 100 — ไม่มีผู้ตอบคะแนนเป็น 0
func CalculateNPS(responses []models.Response) models.NPSMetrics {
	m := models.NPSMetrics{}
	for _, r := range responses {
		if r.NpsScore == nil {
			continue
		}
		m.Total++
		switch {
		case *r.NpsScore >= 9:
			m.Promoters++
		case *r.NpsScore <= 6:
			m.Detractors++
		default:
			m.Passives++
		}
	}
	if m.Total == 0 {
		return m
	}
	m.Score = Round2(float64(m.Promoters-m.Detractors) / float64(m.Total) * 100)
	return m
}

// CalculateCSAT ค่าเฉลี่ย csatScore (1-5) พร้อม histogram
func CalculateCSAT(responses []models.Response) models.ScoreMetrics {
	return calculateScoreMetrics(responses, func(r models.Response) *float64 { return r.CsatScore }, 5)
}

// CalculateCES ค่าเฉลี่ย cesScore (1-7) พร้อม histogram
func CalculateCES(responses []models.Response) models.ScoreMetrics {
	return calculateScoreMetrics(responses, func(r models.Response) *float64 { return r.CesScore }, 7)
}

func calculateScoreMetrics(responses []models.Response, score func(models.Response) *float64, max int) models.ScoreMetrics {
	values := make([]float64, 0, len(responses))
	sum := 0.0
	for _, r := range responses {
		s := score(r)
		if s == nil {
			continue
		}
		values = append(values, *s)
		sum += *s
	}

	m := models.ScoreMetrics{
		Total:        len(values),
		Distribution: BuildDistribution(values, max),
	}
	if m.Total > 0 {
		// ค่าดิบนอกช่วง (ถ้ามี) ยังนับใน mean ตามที่เก็บมา — histogram เท่านั้นที่ทิ้ง
		m.Average = Round2(sum / float64(m.Total))
	}
	return m
}

// BuildDistribution histogram ช่อง 1..max เริ่มจากศูนย์ทุกช่อง
// ค่าถูกปัดเป็นจำนวนเต็มก่อนลงช่อง — ปัดแล้วนอกช่วงจะถูกทิ้งเงียบ ๆ ไม่ clamp
func BuildDistribution(values []float64, max int) map[string]int {
	dist := make(map[string]int, max)
	for i := 1; i <= max; i++ {
		dist[strconv.Itoa(i)] = 0
	}
	for _, v := range values {
		bucket := int(math.Round(v))
		if bucket < 1 || bucket > max {
			continue
		}
		dist[strconv.Itoa(bucket)]++
	}
	return dist
}

// ResponseRate เปอร์เซ็นต์คำตอบเทียบเป้า — เป้าเป็น 0 ให้ 0
func ResponseRate(totalResponses, targetResponses int) float64 {
	if targetResponses == 0 {
		return 0
	}
	return Round2(float64(totalResponses) / float64(targetResponses) * 100)
}

// CompletionRate เปอร์เซ็นต์คำตอบสถานะ completed
func CompletionRate(responses []models.Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	completed := 0
	for _, r := range responses {
		if r.Status == models.ResponseStatusCompleted {
			completed++
		}
	}
	return Round2(float64(completed) / float64(len(responses)) * 100)
}

// GeographicCoverage จำนวนและเปอร์เซ็นต์คำตอบที่มีพิกัด
func GeographicCoverage(responses []models.Response) models.GeoCoverage {
	g := models.GeoCoverage{Total: len(responses)}
	for _, r := range responses {
		if r.Location != nil {
			g.WithLocation++
		}
	}
	if g.Total > 0 {
		g.Percentage = Round2(float64(g.WithLocation) / float64(g.Total) * 100)
	}
	return g
}

// AverageNPS ค่าเฉลี่ย npsScore ดิบของชุดคำตอบ (ใช้บน dashboard)
func AverageNPS(responses []models.Response) float64 {
	sum, count := 0.0, 0
	for _, r := range responses {
		if r.NpsScore != nil {
			sum += *r.NpsScore
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return Round2(sum / float64(count))
}

// AverageCSAT ค่าเฉลี่ย csatScore ดิบของชุดคำตอบ
func AverageCSAT(responses []models.Response) float64 {
	sum, count := 0.0, 0
	for _, r := range responses {
		if r.CsatScore != nil {
			sum += *r.CsatScore
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return Round2(sum / float64(count))
}
