package models

import "time"

// MetricOverview ภาพรวมจำนวนคำตอบของแบบสำรวจ
type MetricOverview struct {
	TotalResponses     int     `json:"totalResponses"`
	CompletedResponses int     `json:"completedResponses"`
	TargetResponses    int     `json:"targetResponses"`
	ResponseRate       float64 `json:"responseRate"`
	CompletionRate     float64 `json:"completionRate"`
}

// NPSMetrics ผลคำนวณ Net Promoter Score
type NPSMetrics struct {
	Score      float64 `json:"score"`
	Promoters  int     `json:"promoters"`
	Passives   int     `json:"passives"`
	Detractors int     `json:"detractors"`
	Total      int     `json:"total"`
}

// ScoreMetrics ผลคำนวณคะแนนแบบช่วง (CSAT 1-5 / CES 1-7)
type ScoreMetrics struct {
	Average      float64        `json:"average"`
	Total        int            `json:"total"`
	Distribution map[string]int `json:"distribution"`
}

// GeoCoverage จำนวนคำตอบที่มีพิกัด
type GeoCoverage struct {
	WithLocation int     `json:"withLocation"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
}

// TimeSeriesPoint จุดข้อมูลตามช่วงเวลา — bucket key ขึ้นกับ period
type TimeSeriesPoint struct {
	Bucket  string  `json:"bucket"`
	Count   int     `json:"count"`
	AvgNps  float64 `json:"avgNps"`
	AvgCsat float64 `json:"avgCsat"`
}

// AnalyticsReport รายงานวิเคราะห์ของแบบสำรวจเดียว
type AnalyticsReport struct {
	SurveyID   string            `json:"surveyId"`
	Title      string            `json:"title"`
	Status     string            `json:"status"`
	Overview   MetricOverview    `json:"overview"`
	NPS        NPSMetrics        `json:"nps"`
	CSAT       ScoreMetrics      `json:"csat"`
	CES        ScoreMetrics      `json:"ces"`
	Geographic GeoCoverage       `json:"geographic"`
	Period     string            `json:"period,omitempty"`
	TimeSeries []TimeSeriesPoint `json:"timeSeries,omitempty"`
}

// RecentResponse คำตอบล่าสุดบน dashboard พร้อมชื่อแบบสำรวจและผู้ตอบ
type RecentResponse struct {
	ID             string    `json:"id"`
	SurveyID       string    `json:"surveyId"`
	SurveyTitle    string    `json:"surveyTitle"`
	RespondentName string    `json:"respondentName"`
	NpsScore       *float64  `json:"npsScore,omitempty"`
	Status         string    `json:"status"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// WeeklyActivity histogram 7 วันล่าสุด — labels กับ counts เรียงตามลำดับเวลา
type WeeklyActivity struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// DashboardTrends เปอร์เซ็นต์การเปลี่ยนแปลงเทียบช่วงก่อนหน้า
type DashboardTrends struct {
	Surveys        float64 `json:"surveys"`
	Responses      float64 `json:"responses"`
	TodayResponses float64 `json:"todayResponses"`
	NPS            float64 `json:"nps"`
}

// DashboardReport รายงานรวมของ dashboard ตามสิทธิ์ผู้เรียก
type DashboardReport struct {
	TotalSurveys    int              `json:"totalSurveys"`
	SurveysByStatus map[string]int   `json:"surveysByStatus"`
	TotalResponses  int              `json:"totalResponses"`
	TodayResponses  int              `json:"todayResponses"`
	WeekResponses   int              `json:"weekResponses"`
	MonthResponses  int              `json:"monthResponses"`
	AverageNps      float64          `json:"averageNps"`
	RecentResponses []RecentResponse `json:"recentResponses"`
	WeeklyActivity  WeeklyActivity   `json:"weeklyActivity"`
	Trends          DashboardTrends  `json:"trends"`
}

// ComparisonRow ผลเปรียบเทียบแบบสำรวจหนึ่งรายการ
type ComparisonRow struct {
	SurveyID       string  `json:"surveyId"`
	Title          string  `json:"title"`
	TotalResponses int     `json:"totalResponses"`
	AvgNps         float64 `json:"avgNps"`
	AvgCsat        float64 `json:"avgCsat"`
	ResponseRate   float64 `json:"responseRate"`
}
