package responses

import (
	"testing"

	"Backend-FieldSurvey-001/src/models"

	"github.com/stretchr/testify/assert"
)

func TestNumericValue(t *testing.T) {
	t.Run("TestSupportedTypes", func(t *testing.T) {
		cases := []struct {
			in   any
			want float64
		}{
			{float64(9), 9},
			{float32(4.5), 4.5},
			{int(7), 7},
			{int32(3), 3},
			{int64(10), 10},
			{"8", 8},
			{"6.5", 6.5},
		}
		for _, c := range cases {
			got, ok := NumericValue(c.in)
			assert.True(t, ok, "value %v", c.in)
			assert.InDelta(t, c.want, got, 0.0001)
		}
	})

	t.Run("TestUnsupportedValues", func(t *testing.T) {
		for _, v := range []any{"abc", true, nil, []int{1}} {
			_, ok := NumericValue(v)
			assert.False(t, ok, "value %v", v)
		}
	})
}

func TestDeriveScores(t *testing.T) {
	answer := func(qtype string, value any) models.Answer {
		return models.Answer{QuestionID: "q1", QuestionType: qtype, Value: value}
	}

	t.Run("TestAllThreeMetrics", func(t *testing.T) {
		nps, csat, ces := DeriveScores([]models.Answer{
			answer(models.QuestionTypeNPS, float64(9)),
			answer(models.QuestionTypeCSAT, float64(4)),
			answer(models.QuestionTypeCES, float64(6)),
		})

		assert.NotNil(t, nps)
		assert.Equal(t, 9.0, *nps)
		assert.NotNil(t, csat)
		assert.Equal(t, 4.0, *csat)
		assert.NotNil(t, ces)
		assert.Equal(t, 6.0, *ces)
	})

	// ค่านอกช่วงต้องถูกทิ้ง ไม่ใช่ปัดเข้าขอบ
	t.Run("TestOutOfRangeDropped", func(t *testing.T) {
		nps, csat, ces := DeriveScores([]models.Answer{
			answer(models.QuestionTypeNPS, float64(11)),
			answer(models.QuestionTypeCSAT, float64(0)),
			answer(models.QuestionTypeCES, float64(8)),
		})

		assert.Nil(t, nps)
		assert.Nil(t, csat)
		assert.Nil(t, ces)
	})

	t.Run("TestBoundaryValues", func(t *testing.T) {
		nps, csat, ces := DeriveScores([]models.Answer{
			answer(models.QuestionTypeNPS, float64(0)),
			answer(models.QuestionTypeCSAT, float64(5)),
			answer(models.QuestionTypeCES, float64(1)),
		})

		assert.Equal(t, 0.0, *nps)
		assert.Equal(t, 5.0, *csat)
		assert.Equal(t, 1.0, *ces)
	})

	// JSON decode มาเป็น string ก็ต้องอ่านได้
	t.Run("TestStringValue", func(t *testing.T) {
		nps, _, _ := DeriveScores([]models.Answer{
			answer(models.QuestionTypeNPS, "10"),
		})
		assert.NotNil(t, nps)
		assert.Equal(t, 10.0, *nps)
	})

	t.Run("TestNonMetricQuestionsIgnored", func(t *testing.T) {
		nps, csat, ces := DeriveScores([]models.Answer{
			answer(models.QuestionTypeText, "great service"),
			answer(models.QuestionTypeScale, float64(5)),
		})

		assert.Nil(t, nps)
		assert.Nil(t, csat)
		assert.Nil(t, ces)
	})
}

func TestValidateRequiredAnswers(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Label: "คะแนนความพึงพอใจ", Required: true},
		{ID: "q2", Label: "ข้อเสนอแนะ", Required: false},
	}

	t.Run("TestAllRequiredAnswered", func(t *testing.T) {
		err := validateRequiredAnswers(questions, []models.Answer{
			{QuestionID: "q1", Value: float64(5)},
		})
		assert.NoError(t, err)
	})

	t.Run("TestMissingRequired", func(t *testing.T) {
		err := validateRequiredAnswers(questions, []models.Answer{
			{QuestionID: "q2", Value: "ดีมาก"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required question not answered")
	})

	t.Run("TestOptionalMayBeSkipped", func(t *testing.T) {
		err := validateRequiredAnswers(questions, []models.Answer{
			{QuestionID: "q1", Value: float64(3)},
		})
		assert.NoError(t, err)
	})
}
