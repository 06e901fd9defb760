package analytics

import (
	DB "Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services/surveys"
	"Backend-FieldSurvey-001/src/services/visibility"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSurveyAnalytics รายงานวิเคราะห์ของแบบสำรวจเดียวตามสิทธิ์ผู้เรียก
// period เป็น optional — ส่งมาจะได้ time-series เพิ่ม (token แปลก ๆ fallback เป็น week)
func GetSurveyAnalytics(ctx context.Context, surveyID primitive.ObjectID, caller models.Caller, params visibility.Params, period string) (*models.AnalyticsReport, error) {
	// อ่านผ่าน lifecycle check — not-found เป็น error, หมดอายุจะถูกปิดก่อน
	survey, err := surveys.GetSurveyByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	filter, err := visibility.ResolveResponseFilter(ctx, caller, params)
	if err != nil {
		return nil, err
	}
	filter["surveyId"] = surveyID

	rows, err := loadResponses(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &models.AnalyticsReport{
		SurveyID: survey.ID.Hex(),
		Title:    survey.Title,
		Status:   survey.Status,
		Overview: models.MetricOverview{
			TotalResponses:     len(rows),
			CompletedResponses: countCompleted(rows),
			TargetResponses:    survey.TargetResponses,
			ResponseRate:       ResponseRate(len(rows), survey.TargetResponses),
			CompletionRate:     CompletionRate(rows),
		},
		NPS:        CalculateNPS(rows),
		CSAT:       CalculateCSAT(rows),
		CES:        CalculateCES(rows),
		Geographic: GeographicCoverage(rows),
	}

	if period != "" {
		p := NormalizePeriod(period)
		report.Period = p
		report.TimeSeries = BuildTimeSeries(rows, p, time.Now())
	}

	return report, nil
}

// GetDashboard รายงานรวมตาม survey ที่ผู้เรียกมองเห็น
func GetDashboard(ctx context.Context, caller models.Caller) (*models.DashboardReport, error) {
	// pre-pass: ปิดแบบสำรวจหมดอายุทั้งหมดก่อนอ่าน
	surveys.CloseExpiredSurveys(ctx)

	surveyFilter := visibility.ResolveSurveyFilter(caller)
	cursor, err := DB.SurveyCollection.Find(ctx, surveyFilter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var visibleSurveys []models.Survey
	if err := cursor.All(ctx, &visibleSurveys); err != nil {
		return nil, err
	}

	report := &models.DashboardReport{
		TotalSurveys:    len(visibleSurveys),
		SurveysByStatus: map[string]int{},
		RecentResponses: []models.RecentResponse{},
	}

	surveyIDs := make([]primitive.ObjectID, 0, len(visibleSurveys))
	titles := make(map[primitive.ObjectID]string, len(visibleSurveys))
	for _, s := range visibleSurveys {
		surveyIDs = append(surveyIDs, s.ID)
		titles[s.ID] = s.Title
		report.SurveysByStatus[s.Status]++
	}

	now := time.Now()
	rows := []models.Response{}
	if len(surveyIDs) > 0 {
		rows, err = loadResponses(ctx, bson.M{"surveyId": bson.M{"$in": surveyIDs}})
		if err != nil {
			return nil, err
		}
	}

	todayStart := utils.StartOfDay(now)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, -1, 0)

	report.TotalResponses = len(rows)
	for _, r := range rows {
		if !r.SubmittedAt.Before(todayStart) {
			report.TodayResponses++
		}
		if !r.SubmittedAt.Before(weekStart) {
			report.WeekResponses++
		}
		if !r.SubmittedAt.Before(monthStart) {
			report.MonthResponses++
		}
	}

	report.AverageNps = AverageNPS(rows)
	report.WeeklyActivity = WeeklyActivity(rows, now)
	report.RecentResponses, err = buildRecentResponses(ctx, rows, titles, 10)
	if err != nil {
		return nil, err
	}
	report.Trends = buildTrends(visibleSurveys, rows, now)

	return report, nil
}

// CompareSurveys เปรียบเทียบหลายแบบสำรวจ — id ที่ไม่มีอยู่จะถูกข้ามเงียบ ๆ
// หมายเหตุ: endpoint นี้ยังไม่กรองแถวตาม role ตามพฤติกรรมเดิมของระบบ
// รอทีม product ยืนยันว่าควร inherit survey-visibility หรือไม่
func CompareSurveys(ctx context.Context, surveyIDs []primitive.ObjectID, caller models.Caller) ([]models.ComparisonRow, error) {
	result := make([]models.ComparisonRow, 0, len(surveyIDs))

	for _, id := range surveyIDs {
		var survey models.Survey
		err := DB.SurveyCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			return nil, err
		}

		rows, err := loadResponses(ctx, bson.M{"surveyId": id})
		if err != nil {
			return nil, err
		}

		result = append(result, models.ComparisonRow{
			SurveyID:       survey.ID.Hex(),
			Title:          survey.Title,
			TotalResponses: len(rows),
			AvgNps:         AverageNPS(rows),
			AvgCsat:        AverageCSAT(rows),
			ResponseRate:   ResponseRate(len(rows), survey.TargetResponses),
		})
	}

	return result, nil
}

// loadResponses ดึง response ตาม filter เรียงตามเวลา submit
func loadResponses(ctx context.Context, filter bson.M) ([]models.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := DB.ResponseCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Response
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func countCompleted(rows []models.Response) int {
	n := 0
	for _, r := range rows {
		if r.Status == models.ResponseStatusCompleted {
			n++
		}
	}
	return n
}

// buildRecentResponses คำตอบล่าสุด เรียงใหม่สุดก่อน พร้อมชื่อแบบสำรวจและผู้ตอบ
func buildRecentResponses(ctx context.Context, rows []models.Response, titles map[primitive.ObjectID]string, limit int) ([]models.RecentResponse, error) {
	sorted := make([]models.Response, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.After(sorted[j].SubmittedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	// ดึงชื่อผู้ตอบครั้งเดียวด้วย $in
	respondentIDs := make([]primitive.ObjectID, 0, len(sorted))
	for _, r := range sorted {
		if r.RespondentID != nil {
			respondentIDs = append(respondentIDs, *r.RespondentID)
		}
	}

	names := map[primitive.ObjectID]string{}
	if len(respondentIDs) > 0 {
		cursor, err := DB.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": respondentIDs}})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	recent := make([]models.RecentResponse, 0, len(sorted))
	for _, r := range sorted {
		name := "Anonymous"
		if r.RespondentID != nil {
			if n, ok := names[*r.RespondentID]; ok && n != "" {
				name = n
			}
		}
		recent = append(recent, models.RecentResponse{
			ID:             r.ID.Hex(),
			SurveyID:       r.SurveyID.Hex(),
			SurveyTitle:    titles[r.SurveyID],
			RespondentName: name,
			NpsScore:       r.NpsScore,
			Status:         r.Status,
			SubmittedAt:    r.SubmittedAt,
		})
	}
	return recent, nil
}

// buildTrends เปอร์เซ็นต์เปลี่ยนแปลง เดือนนี้เทียบเดือนก่อน และวันนี้เทียบเมื่อวาน
func buildTrends(visibleSurveys []models.Survey, rows []models.Response, now time.Time) models.DashboardTrends {
	loc := utils.AppLocation()
	nowLoc := now.In(loc)
	thisMonthStart := time.Date(nowLoc.Year(), nowLoc.Month(), 1, 0, 0, 0, 0, loc)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)
	todayStart := utils.StartOfDay(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	var surveysThisMonth, surveysLastMonth int
	for _, s := range visibleSurveys {
		switch {
		case !s.CreatedAt.Before(thisMonthStart):
			surveysThisMonth++
		case !s.CreatedAt.Before(lastMonthStart):
			surveysLastMonth++
		}
	}

	var responsesThisMonth, responsesLastMonth []models.Response
	var todayCount, yesterdayCount int
	for _, r := range rows {
		switch {
		case !r.SubmittedAt.Before(thisMonthStart):
			responsesThisMonth = append(responsesThisMonth, r)
		case !r.SubmittedAt.Before(lastMonthStart):
			responsesLastMonth = append(responsesLastMonth, r)
		}
		switch {
		case !r.SubmittedAt.Before(todayStart):
			todayCount++
		case !r.SubmittedAt.Before(yesterdayStart):
			yesterdayCount++
		}
	}

	return models.DashboardTrends{
		Surveys:        PercentChange(float64(surveysThisMonth), float64(surveysLastMonth), 0),
		Responses:      PercentChange(float64(len(responsesThisMonth)), float64(len(responsesLastMonth)), 0),
		TodayResponses: PercentChange(float64(todayCount), float64(yesterdayCount), 0),
		// NPS ใช้สูตรเดียวกันแต่ปัดละเอียดขึ้นหนึ่งตำแหน่ง บนคะแนนดิบไม่ใช่จำนวน
		NPS: PercentChange(AverageNPS(responsesThisMonth), AverageNPS(responsesLastMonth), 1),
	}
}
