package analytics

import (
	"testing"

	"Backend-FieldSurvey-001/src/models"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func npsResponses(scores ...float64) []models.Response {
	out := make([]models.Response, 0, len(scores))
	for _, s := range scores {
		out = append(out, models.Response{NpsScore: fptr(s)})
	}
	return out
}

func TestCalculateNPS(t *testing.T) {
	// promoter >= 9, detractor <= 6, ที่เหลือ passive
	t.Run("TestPartitioning", func(t *testing.T) {
		m := CalculateNPS(npsResponses(10, 9, 9, 7, 3))

		assert.Equal(t, 3, m.Promoters)
		assert.Equal(t, 1, m.Passives)
		assert.Equal(t, 1, m.Detractors)
		assert.Equal(t, 5, m.Total)
		// (3-1)/5*100 = 40
		assert.Equal(t, 40.0, m.Score)
	})

	t.Run("TestBoundaryScores", func(t *testing.T) {
		// 9 เป็น promoter, 6 เป็น detractor, 7 กับ 8 เป็น passive
		m := CalculateNPS(npsResponses(9, 6, 7, 8))

		assert.Equal(t, 1, m.Promoters)
		assert.Equal(t, 1, m.Detractors)
		assert.Equal(t, 2, m.Passives)
	})

	t.Run("TestAllDetractors", func(t *testing.T) {
		m := CalculateNPS(npsResponses(0, 1, 2))

		assert.Equal(t, -100.0, m.Score)
		assert.GreaterOrEqual(t, m.Score, -100.0)
		assert.LessOrEqual(t, m.Score, 100.0)
	})

	// ไม่มีผู้ตอบ → ทุกค่าเป็น 0 ห้ามเป็น NaN
	t.Run("TestEmptyResponses", func(t *testing.T) {
		m := CalculateNPS(nil)

		assert.Equal(t, 0.0, m.Score)
		assert.Equal(t, 0, m.Total)
	})

	// response ที่ไม่มี npsScore ต้องไม่ถูกนับ
	t.Run("TestNilScoresSkipped", func(t *testing.T) {
		responses := append(npsResponses(10), models.Response{}, models.Response{})
		m := CalculateNPS(responses)

		assert.Equal(t, 1, m.Total)
		assert.Equal(t, 100.0, m.Score)
	})

	t.Run("TestRounding", func(t *testing.T) {
		// (2-1)/6*100 = 16.666... → 16.67
		m := CalculateNPS(npsResponses(9, 10, 3, 7, 8, 7))
		assert.Equal(t, 16.67, m.Score)
	})
}

func TestCalculateCSAT(t *testing.T) {
	t.Run("TestAverageAndDistribution", func(t *testing.T) {
		responses := []models.Response{
			{CsatScore: fptr(5)},
			{CsatScore: fptr(4)},
			{CsatScore: fptr(4)},
			{CsatScore: fptr(2)},
		}
		m := CalculateCSAT(responses)

		assert.Equal(t, 3.75, m.Average)
		assert.Equal(t, 4, m.Total)
		assert.Equal(t, 1, m.Distribution["5"])
		assert.Equal(t, 2, m.Distribution["4"])
		assert.Equal(t, 0, m.Distribution["3"])
		assert.Equal(t, 1, m.Distribution["2"])
		assert.Equal(t, 0, m.Distribution["1"])
	})

	t.Run("TestEmpty", func(t *testing.T) {
		m := CalculateCSAT(nil)

		assert.Equal(t, 0.0, m.Average)
		assert.Equal(t, 0, m.Total)
		// histogram ต้องมีครบทุกช่อง 1-5 แม้ไม่มีข้อมูล
		assert.Len(t, m.Distribution, 5)
	})
}

func TestCalculateCES(t *testing.T) {
	responses := []models.Response{
		{CesScore: fptr(7)},
		{CesScore: fptr(6)},
		{CesScore: fptr(2)},
	}
	m := CalculateCES(responses)

	assert.Equal(t, 5.0, m.Average)
	assert.Equal(t, 3, m.Total)
	assert.Len(t, m.Distribution, 7)
	assert.Equal(t, 1, m.Distribution["7"])
	assert.Equal(t, 1, m.Distribution["6"])
	assert.Equal(t, 1, m.Distribution["2"])
}

func TestBuildDistribution(t *testing.T) {
	// ค่าถูกปัดก่อนลงช่อง — ปัดแล้วนอกช่วงถูกทิ้ง ไม่ clamp
	t.Run("TestRoundingIntoBuckets", func(t *testing.T) {
		dist := BuildDistribution([]float64{4.5, 3.4, 1.0}, 5)

		assert.Equal(t, 1, dist["5"]) // 4.5 ปัดขึ้น
		assert.Equal(t, 1, dist["3"]) // 3.4 ปัดลง
		assert.Equal(t, 1, dist["1"])
	})

	t.Run("TestOutOfRangeDropped", func(t *testing.T) {
		dist := BuildDistribution([]float64{0.4, 5.6, 99}, 5)

		total := 0
		for _, c := range dist {
			total += c
		}
		assert.Equal(t, 0, total)
	})
}

func TestResponseRate(t *testing.T) {
	assert.Equal(t, 20.0, ResponseRate(10, 50))
	assert.Equal(t, 120.0, ResponseRate(60, 50))
	// เป้าเป็น 0 → 0 ไม่ใช่ NaN/Inf
	assert.Equal(t, 0.0, ResponseRate(10, 0))
}

func TestCompletionRate(t *testing.T) {
	responses := []models.Response{
		{Status: models.ResponseStatusCompleted},
		{Status: models.ResponseStatusCompleted},
		{Status: models.ResponseStatusPartial},
		{Status: models.ResponseStatusCompleted},
	}
	assert.Equal(t, 75.0, CompletionRate(responses))
	assert.Equal(t, 0.0, CompletionRate(nil))
}

func TestGeographicCoverage(t *testing.T) {
	responses := []models.Response{
		{Location: &models.GeoPoint{Latitude: 13.75, Longitude: 100.5}},
		{},
		{Location: &models.GeoPoint{Latitude: 18.79, Longitude: 98.98}},
		{},
	}
	g := GeographicCoverage(responses)

	assert.Equal(t, 2, g.WithLocation)
	assert.Equal(t, 4, g.Total)
	assert.Equal(t, 50.0, g.Percentage)
}

func TestAverageNPS(t *testing.T) {
	// ค่าเฉลี่ยดิบของ npsScore ไม่ใช่คะแนน NPS
	assert.Equal(t, 8.0, AverageNPS(npsResponses(10, 9, 5)))
	assert.Equal(t, 0.0, AverageNPS(nil))
}
