package visibility

import (
	"testing"

	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/utils"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildResponseFilterAdmin(t *testing.T) {
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	t.Run("TestNoRestriction", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, nil, Params{})

		assert.NoError(t, err)
		assert.Equal(t, bson.M{}, filter)
	})

	t.Run("TestAgentRestriction", func(t *testing.T) {
		agent := primitive.NewObjectID()
		filter, err := BuildResponseFilter(caller, nil, Params{AgentID: agent.Hex()})

		assert.NoError(t, err)
		assert.Equal(t, agent, filter["respondentId"])
	})

	t.Run("TestInvalidAgentID", func(t *testing.T) {
		_, err := BuildResponseFilter(caller, nil, Params{AgentID: "not-a-hex"})
		assert.Error(t, err)
	})
}

func TestBuildResponseFilterSupervisor(t *testing.T) {
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleSupervisor}
	memberA := primitive.NewObjectID()
	memberB := primitive.NewObjectID()
	team := &models.Team{Members: []primitive.ObjectID{memberA, memberB}}

	t.Run("TestTeamMembers", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, team, Params{})

		assert.NoError(t, err)
		assert.Equal(t, bson.M{"$in": team.Members}, filter["respondentId"])
	})

	// ไม่มีทีม → ต้องไม่เห็นอะไรเลย ไม่ใช่เห็นทั้งหมด
	t.Run("TestNoTeamFailsClosed", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, nil, Params{})

		assert.NoError(t, err)
		assert.Equal(t, MatchNoResponses(), filter)
	})

	t.Run("TestEmptyTeamFailsClosed", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, &models.Team{}, Params{})

		assert.NoError(t, err)
		assert.Equal(t, MatchNoResponses(), filter)
	})

	t.Run("TestAgentInTeam", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, team, Params{AgentID: memberB.Hex()})

		assert.NoError(t, err)
		assert.Equal(t, memberB, filter["respondentId"])
	})

	// ขอดู agent นอกทีม → ผลว่าง ไม่ใช่ error
	t.Run("TestAgentOutsideTeamFailsClosed", func(t *testing.T) {
		outsider := primitive.NewObjectID()
		filter, err := BuildResponseFilter(caller, team, Params{AgentID: outsider.Hex()})

		assert.NoError(t, err)
		assert.Equal(t, MatchNoResponses(), filter)
	})
}

func TestBuildResponseFilterFieldAgent(t *testing.T) {
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleFieldAgent}

	t.Run("TestPinnedToSelf", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, nil, Params{})

		assert.NoError(t, err)
		assert.Equal(t, caller.ID, filter["respondentId"])
	})

	// field_agent ส่ง agentId ของคนอื่นมา — ต้องถูกเมิน ยังเห็นแค่ของตัวเอง
	t.Run("TestAgentParamIgnored", func(t *testing.T) {
		other := primitive.NewObjectID()
		filter, err := BuildResponseFilter(caller, nil, Params{AgentID: other.Hex()})

		assert.NoError(t, err)
		assert.Equal(t, caller.ID, filter["respondentId"])
	})
}

// การอ่านรายการเดียวใช้ filter สิทธิ์เดิมบวก _id — แถวของคนอื่นต้อง match ไม่ได้
func TestBuildResponseFilterWithIDPredicate(t *testing.T) {
	t.Run("TestFieldAgentCannotReachForeignResponse", func(t *testing.T) {
		caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleFieldAgent}
		filter, err := BuildResponseFilter(caller, nil, Params{})
		assert.NoError(t, err)

		foreignResponseID := primitive.NewObjectID()
		filter["_id"] = foreignResponseID

		// predicate ยังผูก respondentId กับผู้เรียกเสมอ — แถวที่ respondent
		// เป็นคนอื่นไม่มีทางผ่าน filter นี้ ต่อให้รู้ _id ก็ตาม
		assert.Equal(t, caller.ID, filter["respondentId"])
		assert.Equal(t, foreignResponseID, filter["_id"])
	})

	t.Run("TestSupervisorScopeSurvivesIDPredicate", func(t *testing.T) {
		caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleSupervisor}
		member := primitive.NewObjectID()
		team := &models.Team{Members: []primitive.ObjectID{member}}

		filter, err := BuildResponseFilter(caller, team, Params{})
		assert.NoError(t, err)

		filter["_id"] = primitive.NewObjectID()
		assert.Equal(t, bson.M{"$in": team.Members}, filter["respondentId"])
	})
}

func TestBuildResponseFilterUnknownRole(t *testing.T) {
	caller := models.Caller{ID: primitive.NewObjectID(), Role: "superuser"}
	filter, err := BuildResponseFilter(caller, nil, Params{})

	assert.NoError(t, err)
	assert.Equal(t, MatchNoResponses(), filter)
}

func TestBuildResponseFilterDateRange(t *testing.T) {
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	t.Run("TestInclusiveBounds", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, nil, Params{
			StartDate: "2026-08-01",
			EndDate:   "2026-08-31",
		})
		assert.NoError(t, err)

		dateCond, ok := filter["submittedAt"].(bson.M)
		assert.True(t, ok)

		start, _ := utils.ParseDateParam("2026-08-01")
		end, _ := utils.ParseDateParam("2026-08-31")
		assert.Equal(t, utils.StartOfDay(start), dateCond["$gte"])
		assert.Equal(t, utils.EndOfDay(end), dateCond["$lte"])
	})

	t.Run("TestStartOnly", func(t *testing.T) {
		filter, err := BuildResponseFilter(caller, nil, Params{StartDate: "2026-08-01"})
		assert.NoError(t, err)

		dateCond := filter["submittedAt"].(bson.M)
		assert.Contains(t, dateCond, "$gte")
		assert.NotContains(t, dateCond, "$lte")
	})

	t.Run("TestInvalidDate", func(t *testing.T) {
		_, err := BuildResponseFilter(caller, nil, Params{StartDate: "01/08/2026"})
		assert.Error(t, err)
	})

	// fail-closed filter ก็ยังต้องเคารพช่วงวันที่
	t.Run("TestDateRangeOnFailClosed", func(t *testing.T) {
		supervisor := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleSupervisor}
		filter, err := BuildResponseFilter(supervisor, nil, Params{StartDate: "2026-08-01"})

		assert.NoError(t, err)
		assert.Equal(t, bson.M{"$in": bson.A{}}, filter["respondentId"])
		assert.Contains(t, filter, "submittedAt")
	})
}

func TestResolveSurveyFilter(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("TestAdminSeesAll", func(t *testing.T) {
		filter := ResolveSurveyFilter(models.Caller{ID: id, Role: models.RoleAdmin})
		assert.Equal(t, bson.M{}, filter)
	})

	t.Run("TestSupervisorAssignedOrOwned", func(t *testing.T) {
		filter := ResolveSurveyFilter(models.Caller{ID: id, Role: models.RoleSupervisor})
		assert.Equal(t, bson.M{"$or": bson.A{
			bson.M{"assignedTo": id},
			bson.M{"createdBy": id},
		}}, filter)
	})

	t.Run("TestFieldAgentAssignedOnly", func(t *testing.T) {
		filter := ResolveSurveyFilter(models.Caller{ID: id, Role: models.RoleFieldAgent})
		assert.Equal(t, bson.M{"assignedTo": id}, filter)
	})

	t.Run("TestUnknownRoleFailsClosed", func(t *testing.T) {
		filter := ResolveSurveyFilter(models.Caller{ID: id, Role: "guest"})
		assert.Equal(t, MatchNoSurveys(), filter)
	})
}
