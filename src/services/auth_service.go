package services

import (
	"Backend-FieldSurvey-001/src/database"
	"Backend-FieldSurvey-001/src/models"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func AuthenticateUser(email, password string) (*models.User, error) {
	ctx := context.Background()

	var dbUser models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&dbUser)
	if err != nil {
		return nil, errors.New("Invalid email or password")
	}

	// ตรวจสอบ password
	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(password)); err != nil {
		return nil, errors.New("Invalid password")
	}

	return &models.User{
		ID:    dbUser.ID,
		Name:  dbUser.Name,
		Email: dbUser.Email,
		Role:  dbUser.Role,
	}, nil
}

// GetUserByID ดึงข้อมูล user จาก id (ใช้ตอบ /auth/me)
func GetUserByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

// CreateUser สร้าง user ใหม่พร้อม hash password
func CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if !models.ValidRole(user.Role) {
		return nil, errors.New("invalid role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.Password = string(hashed)

	if _, err := database.UserCollection.InsertOne(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}
