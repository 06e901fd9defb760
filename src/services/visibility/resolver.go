package visibility

import (
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services/teams"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Params ตัวกรองเพิ่มเติมจาก query string ของผู้เรียก
type Params struct {
	AgentID   string `query:"agentId"`
	StartDate string `query:"startDate"` // รูปแบบ 2006-01-02
	EndDate   string `query:"endDate"`
}

// MatchNoResponses filter ที่ไม่ match response แถวไหนเลย (fail-closed)
// $in กับ array ว่างไม่มีทาง match — ใช้เป็น empty-result contract ไม่ใช่ error
func MatchNoResponses() bson.M {
	return bson.M{"respondentId": bson.M{"$in": bson.A{}}}
}

// MatchNoSurveys filter ที่ไม่ match survey แถวไหนเลย
func MatchNoSurveys() bson.M {
	return bson.M{"_id": bson.M{"$in": bson.A{}}}
}

// ResolveResponseFilter สร้าง filter สำหรับ response ตาม role ของผู้เรียก
// ต้องเรียกใหม่ทุก request — สมาชิกทีมเปลี่ยนได้ระหว่าง request จึงห้าม cache
func ResolveResponseFilter(ctx context.Context, caller models.Caller, params Params) (bson.M, error) {
	var team *models.Team

	if caller.Role == models.RoleSupervisor {
		t, err := teams.GetTeamBySupervisor(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		team = t
	}

	return BuildResponseFilter(caller, team, params)
}

// BuildResponseFilter ประกอบ filter จากข้อมูลที่ resolve มาแล้ว (pure — ไม่แตะ DB)
//
// ลำดับกฎ:
//   - admin: ไม่จำกัดผู้ตอบ ยกเว้นระบุ agentId มาจะจำกัดเฉพาะคนนั้น
//   - supervisor: จำกัดเฉพาะสมาชิกทีมตัวเอง ไม่มีทีม/ทีมว่าง → ไม่เห็นอะไรเลย
//   - field_agent: เห็นเฉพาะคำตอบของตัวเองเสมอ (agentId ที่ส่งมาถูกเมิน)
func BuildResponseFilter(caller models.Caller, team *models.Team, params Params) (bson.M, error) {
	filter := bson.M{}

	switch caller.Role {
	case models.RoleAdmin:
		if params.AgentID != "" {
			oid, err := primitive.ObjectIDFromHex(params.AgentID)
			if err != nil {
				return nil, errors.New("invalid agent id")
			}
			filter["respondentId"] = oid
		}

	case models.RoleSupervisor:
		if team == nil || len(team.Members) == 0 {
			return applyDateRange(MatchNoResponses(), params)
		}

		if params.AgentID != "" {
			oid, err := primitive.ObjectIDFromHex(params.AgentID)
			if err != nil {
				return nil, errors.New("invalid agent id")
			}
			// agentId ต้องเป็นสมาชิกทีม — เทียบด้วย ObjectID ตรง ๆ ไม่แปลง string รายจุด
			isMember := false
			for _, m := range team.Members {
				if m == oid {
					isMember = true
					break
				}
			}
			if !isMember {
				return applyDateRange(MatchNoResponses(), params)
			}
			filter["respondentId"] = oid
		} else {
			filter["respondentId"] = bson.M{"$in": team.Members}
		}

	case models.RoleFieldAgent:
		filter["respondentId"] = caller.ID

	default:
		return applyDateRange(MatchNoResponses(), params)
	}

	return applyDateRange(filter, params)
}

// applyDateRange เติมเงื่อนไขช่วงวันที่ลงบน submittedAt (รวมปลายทั้งสองด้าน)
func applyDateRange(filter bson.M, params Params) (bson.M, error) {
	dateCond := bson.M{}

	if params.StartDate != "" {
		start, err := utils.ParseDateParam(params.StartDate)
		if err != nil {
			return nil, errors.New("invalid start date")
		}
		dateCond["$gte"] = utils.StartOfDay(start)
	}

	if params.EndDate != "" {
		end, err := utils.ParseDateParam(params.EndDate)
		if err != nil {
			return nil, errors.New("invalid end date")
		}
		dateCond["$lte"] = utils.EndOfDay(end)
	}

	if len(dateCond) > 0 {
		filter["submittedAt"] = dateCond
	}

	return filter, nil
}

// ResolveSurveyFilter สร้าง filter ระดับ survey ตาม role
//   - field_agent: เฉพาะ survey ที่ถูก assign
//   - supervisor: ถูก assign หรือเป็นคนสร้าง
//   - admin: ทั้งหมด
func ResolveSurveyFilter(caller models.Caller) bson.M {
	switch caller.Role {
	case models.RoleAdmin:
		return bson.M{}
	case models.RoleSupervisor:
		return bson.M{"$or": bson.A{
			bson.M{"assignedTo": caller.ID},
			bson.M{"createdBy": caller.ID},
		}}
	case models.RoleFieldAgent:
		return bson.M{"assignedTo": caller.ID}
	}
	return MatchNoSurveys()
}
