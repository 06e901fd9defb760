package teams

import (
	DB "Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/models"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetTeamBySupervisor หาทีมของ supervisor — คืน nil (ไม่ error) ถ้าไม่มีทีม
// Visibility resolver ต้องอ่านสดทุก request เพราะสมาชิกทีมเปลี่ยนได้ตลอด
func GetTeamBySupervisor(ctx context.Context, supervisorID primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := DB.TeamCollection.FindOne(ctx, bson.M{"supervisorId": supervisorID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// GetTeamByID หาทีมจาก id
func GetTeamByID(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := DB.TeamCollection.FindOne(ctx, bson.M{"_id": teamID}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("team not found")
		}
		return nil, err
	}
	return &team, nil
}

// CreateTeam สร้างทีมใหม่
func CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (*models.Team, error) {
	now := time.Now()
	team := &models.Team{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Members:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.SupervisorID != "" {
		oid, err := primitive.ObjectIDFromHex(req.SupervisorID)
		if err != nil {
			return nil, errors.New("invalid supervisor id")
		}
		team.SupervisorID = &oid
	}

	if _, err := DB.TeamCollection.InsertOne(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// SetSupervisor กำหนด supervisor ให้ทีม (ทีมละหนึ่งคน)
func SetSupervisor(ctx context.Context, teamID, supervisorID primitive.ObjectID) error {
	res, err := DB.TeamCollection.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{"$set": bson.M{"supervisorId": supervisorID, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("team not found")
	}
	return nil
}

// AddMember เพิ่มสมาชิกเข้าทีม — user หนึ่งคนอยู่ได้ทีมเดียว
// จึงต้องดึงออกจากทีมอื่นก่อน แล้วค่อย $addToSet เข้าทีมเป้าหมาย
func AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	_, err := DB.TeamCollection.UpdateMany(ctx,
		bson.M{"members": userID},
		bson.M{"$pull": bson.M{"members": userID}},
	)
	if err != nil {
		return err
	}

	res, err := DB.TeamCollection.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{
			"$addToSet": bson.M{"members": userID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("team not found")
	}
	return nil
}

// RemoveMember เอาสมาชิกออกจากทีม
func RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	res, err := DB.TeamCollection.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("team not found")
	}
	return nil
}

// GetTeams ดึงทีมทั้งหมด
func GetTeams(ctx context.Context) ([]models.Team, error) {
	cursor, err := DB.TeamCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Team
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
