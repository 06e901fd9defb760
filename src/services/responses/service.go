package responses

import (
	DB "Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services/surveys"
	"Backend-FieldSurvey-001/src/services/visibility"
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validate = validator.New()

// ช่วงคะแนนที่ยอมรับของแต่ละ metric — นอกช่วงถือว่าไม่มีคะแนน (ไม่ clamp)
const (
	npsMin, npsMax   = 0, 10
	csatMin, csatMax = 1, 5
	cesMin, cesMax   = 1, 7
)

// NumericValue แปลงค่า answer เป็นตัวเลข — รองรับชนิดที่ driver/JSON ถอดมาได้
func NumericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// DeriveScores หา nps/csat/ces จาก answers ตอนสร้าง response
// ค่านอกช่วงถูกทิ้ง (field เป็น nil) ตาม contract — ไม่ปัดเข้าขอบ
func DeriveScores(answers []models.Answer) (nps, csat, ces *float64) {
	for _, a := range answers {
		val, ok := NumericValue(a.Value)
		if !ok {
			continue
		}
		switch a.QuestionType {
		case models.QuestionTypeNPS:
			if val >= npsMin && val <= npsMax {
				v := val
				nps = &v
			}
		case models.QuestionTypeCSAT:
			if val >= csatMin && val <= csatMax {
				v := val
				csat = &v
			}
		case models.QuestionTypeCES:
			if val >= cesMin && val <= cesMax {
				v := val
				ces = &v
			}
		}
	}
	return nps, csat, ces
}

// CreateResponse บันทึกคำตอบใหม่ พร้อม derive คะแนนและเพิ่ม responseCount แบบ atomic
// respondent เป็น nil ได้เฉพาะแบบสำรวจที่เปิด allowAnonymous
func CreateResponse(ctx context.Context, req *models.SubmitResponseRequest, respondent *primitive.ObjectID) (*models.Response, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	surveyID, err := primitive.ObjectIDFromHex(req.SurveyID)
	if err != nil {
		return nil, errors.New("invalid survey id")
	}

	// อ่านผ่าน lifecycle check — แบบสำรวจที่เลยกำหนดจะถูกปิดก่อนถึงบรรทัดถัดไป
	survey, err := surveys.GetSurveyByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey.Status != models.SurveyStatusActive {
		return nil, errors.New("survey is not active")
	}

	if respondent == nil && !survey.Settings.AllowAnonymous {
		return nil, errors.New("survey does not allow anonymous responses")
	}
	if survey.Settings.RequireGeolocation && req.Location == nil {
		return nil, errors.New("survey requires geolocation")
	}

	if err := validateRequiredAnswers(survey.Questions, req.Answers); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ResponseStatusCompleted
	}
	if !models.ValidResponseStatus(status) {
		return nil, errors.New("invalid response status")
	}

	answers := make([]models.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		answers = append(answers, a)
	}

	nps, csat, ces := DeriveScores(answers)

	response := &models.Response{
		ID:           primitive.NewObjectID(),
		SurveyID:     surveyID,
		RespondentID: respondent,
		Answers:      answers,
		Location:     req.Location,
		DeviceInfo:   req.DeviceInfo,
		Metadata:     req.Metadata,
		NpsScore:     nps,
		CsatScore:    csat,
		CesScore:     ces,
		Status:       status,
		SubmittedAt:  time.Now(),
	}

	if _, err := DB.ResponseCollection.InsertOne(ctx, response); err != nil {
		return nil, err
	}

	// ✅ $inc ฝั่ง DB — submit พร้อมกันหลายตัวต้องไม่ทำ count หาย
	_, err = DB.SurveyCollection.UpdateOne(ctx,
		bson.M{"_id": surveyID},
		bson.M{"$inc": bson.M{"responseCount": 1}},
	)
	if err != nil {
		log.Printf("⚠️ Failed to increment response count for survey %s: %v", surveyID.Hex(), err)
	}

	return response, nil
}

// validateRequiredAnswers ตรวจว่าคำถาม required ถูกตอบครบ
func validateRequiredAnswers(questions []models.Question, answers []models.Answer) error {
	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	for _, q := range questions {
		if q.Required && !answered[q.ID] {
			return errors.New("required question not answered: " + q.Label)
		}
	}
	return nil
}

// GetResponses ดึงคำตอบตามสิทธิ์ผู้เรียก พร้อมแบ่งหน้า เรียงใหม่สุดก่อน
// surveyID เป็น optional — ส่ง nil เพื่อดูข้ามแบบสำรวจ
func GetResponses(ctx context.Context, caller models.Caller, params visibility.Params, surveyID *primitive.ObjectID, page models.PaginationParams) (*models.PaginatedResponse, error) {
	filter, err := visibility.ResolveResponseFilter(ctx, caller, params)
	if err != nil {
		return nil, err
	}
	if surveyID != nil {
		filter["surveyId"] = *surveyID
	}

	total, err := DB.ResponseCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(page.GetSkip()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "submittedAt", Value: -1}})

	cursor, err := DB.ResponseCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Response
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(result, total, page), nil
}

// GetResponseByID ดึงคำตอบเดียว — ผ่านตัวกรองสิทธิ์เดียวกับ listing
// แถวที่ผู้เรียกไม่มีสิทธิ์เห็นตอบ not found ไม่ใช่ forbidden (ไม่เผย id ว่ามีจริง)
func GetResponseByID(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.Response, error) {
	filter, err := visibility.ResolveResponseFilter(ctx, caller, visibility.Params{})
	if err != nil {
		return nil, err
	}
	filter["_id"] = id

	var response models.Response
	err = DB.ResponseCollection.FindOne(ctx, filter).Decode(&response)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("response not found")
		}
		return nil, err
	}
	return &response, nil
}
