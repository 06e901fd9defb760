package surveys

import (
	DB "Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services/visibility"
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validate = validator.New()

// CreateSurvey สร้างแบบสำรวจใหม่ เริ่มที่สถานะ draft เสมอ
func CreateSurvey(ctx context.Context, req *models.CreateSurveyRequest, creator primitive.ObjectID) (*models.Survey, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	survey := &models.Survey{
		ID:              primitive.NewObjectID(),
		Title:           req.Title,
		Description:     req.Description,
		Status:          models.SurveyStatusDraft,
		TargetResponses: req.TargetResponses,
		ResponseCount:   0,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		CreatedBy:       creator,
		AssignedTo:      []primitive.ObjectID{},
		Settings:        req.Settings,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// ✅ คำถามใช้ id เป็น string คงที่ — ถ้า client ไม่ส่งมา server สร้าง uuid ให้
	questions := make([]models.Question, 0, len(req.Questions))
	for i, q := range req.Questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.Order = i + 1
		questions = append(questions, q)
	}
	survey.Questions = questions

	for _, idStr := range req.AssignedTo {
		oid, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return nil, errors.New("invalid assigned agent id")
		}
		survey.AssignedTo = append(survey.AssignedTo, oid)
	}

	if _, err := DB.SurveyCollection.InsertOne(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// GetSurveys ดึงแบบสำรวจตามสิทธิ์ของผู้เรียก พร้อมแบ่งหน้า
// ก่อนคืนผลจะ sweep ปิดแบบสำรวจที่หมดอายุทั้งหมดก่อน (pre-pass)
func GetSurveys(ctx context.Context, caller models.Caller, params models.PaginationParams, status string) (*models.PaginatedResponse, error) {
	// ปิดตัวที่เลยกำหนดก่อน เพื่อให้รายการที่คืนสะท้อนสถานะจริง
	CloseExpiredSurveys(ctx)

	filter := visibility.ResolveSurveyFilter(caller)
	if status != "" {
		if !models.ValidSurveyStatus(status) {
			return nil, errors.New("invalid survey status")
		}
		filter["status"] = status
	}
	if params.Search != "" {
		filter["title"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := DB.SurveyCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortOrder := 1
	if params.Order == "desc" {
		sortOrder = -1
	}
	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: params.SortBy, Value: sortOrder}})

	cursor, err := DB.SurveyCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []models.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(surveys, total, params), nil
}

// GetSurveyByID อ่านแบบสำรวจเดียว พร้อมเช็คหมดอายุก่อนคืนข้อมูล
func GetSurveyByID(ctx context.Context, surveyID primitive.ObjectID) (*models.Survey, error) {
	var survey models.Survey
	err := DB.SurveyCollection.FindOne(ctx, bson.M{"_id": surveyID}).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("survey not found")
		}
		return nil, err
	}

	return checkAndApplyExpiry(ctx, &survey), nil
}

// UpdateStatus เปลี่ยนสถานะตาม state machine — closed เป็นสถานะสุดท้าย
func UpdateStatus(ctx context.Context, surveyID primitive.ObjectID, status string) (*models.Survey, error) {
	if !models.ValidSurveyStatus(status) {
		return nil, errors.New("invalid survey status")
	}

	survey, err := GetSurveyByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	if survey.Status == models.SurveyStatusClosed {
		return nil, errors.New("survey is closed")
	}

	_, err = DB.SurveyCollection.UpdateOne(ctx,
		bson.M{"_id": surveyID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	survey.Status = status
	return survey, nil
}

// ExtendEndDate ขยายวันสิ้นสุด — เก็บ originalEndDate ไว้ครั้งแรกที่ขยายเท่านั้น
func ExtendEndDate(ctx context.Context, surveyID primitive.ObjectID, newEnd time.Time) (*models.Survey, error) {
	survey, err := GetSurveyByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	if survey.Status == models.SurveyStatusClosed {
		return nil, errors.New("survey is closed")
	}

	set := bson.M{"endDate": newEnd, "updatedAt": time.Now()}
	if survey.OriginalEndDate == nil && survey.EndDate != nil {
		set["originalEndDate"] = *survey.EndDate
		original := *survey.EndDate
		survey.OriginalEndDate = &original
	}

	_, err = DB.SurveyCollection.UpdateOne(ctx, bson.M{"_id": surveyID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}

	survey.EndDate = &newEnd
	return survey, nil
}

// AssignAgents กำหนด field agent ให้แบบสำรวจ (many-to-many)
func AssignAgents(ctx context.Context, surveyID primitive.ObjectID, agentIDs []primitive.ObjectID) error {
	res, err := DB.SurveyCollection.UpdateOne(ctx,
		bson.M{"_id": surveyID},
		bson.M{
			"$addToSet": bson.M{"assignedTo": bson.M{"$each": agentIDs}},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("survey not found")
	}
	return nil
}

// DeleteSurvey ลบแบบสำรวจพร้อมคำตอบทั้งหมด
func DeleteSurvey(ctx context.Context, surveyID primitive.ObjectID) error {
	res, err := DB.SurveyCollection.DeleteOne(ctx, bson.M{"_id": surveyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("survey not found")
	}

	_, err = DB.ResponseCollection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	return err
}
