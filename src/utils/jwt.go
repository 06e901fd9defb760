package utils

import (
	"Backend-FieldSurvey-001/src/models"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims ตัวตนของผู้ใช้ใน access token
// role ถูกใช้ตัดสิทธิ์ทั้งที่ middleware และ visibility resolver
// จึงต้องเป็น enum ที่ระบบรู้จักเท่านั้น ทั้งตอนออกและตอนถอด token
type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "field-survey-dev-secret" // dev เท่านั้น — production ต้องตั้ง JWT_SECRET
	}
	return []byte(secret)
}

// accessTokenTTL อายุ access token — ตั้งผ่าน JWT_TTL_HOURS (ค่าเริ่มต้น 24 ชม.)
func accessTokenTTL() time.Duration {
	if h, err := strconv.Atoi(os.Getenv("JWT_TTL_HOURS")); err == nil && h > 0 {
		return time.Duration(h) * time.Hour
	}
	return 24 * time.Hour
}

// GenerateJWT ออก access token HS256 ให้ user
func GenerateJWT(userID, email, role string) (string, error) {
	if !models.ValidRole(role) {
		return "", fmt.Errorf("unknown role: %s", role)
	}

	claims := JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseJWT ตรวจลายเซ็นและถอด claims — role ที่ไม่รู้จักถือว่า token ใช้ไม่ได้
func ParseJWT(tokenStr string) (*JWTClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("empty token string")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || token == nil {
		return nil, fmt.Errorf("token parsing failed: %v", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if !models.ValidRole(claims.Role) {
		return nil, fmt.Errorf("unknown role in token: %s", claims.Role)
	}

	return claims, nil
}

// NewRefreshToken สุ่ม refresh token แบบ opaque (hex 64 ตัวอักษร)
// ตัว token ไม่มีข้อมูลข้างใน — ความหมายอยู่ที่ key ใน Redis เท่านั้น
func NewRefreshToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)
}
