package services

import (
	"testing"
	"time"

	"diligencias_app_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Session{}, &models.PasswordResetToken{})
	assert.NoError(t, err)

	return db
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "Str0ng!Password123", hash)

	assert.True(t, VerifyPassword(hash, "Str0ng!Password123"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
}

func TestSessionLifecycle(t *testing.T) {
	db := setupAuthTestDB(t)

	user, err := RegisterUser(db, "Ana García", "ana@example.com", "Str0ng!Password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	session, err := CreateSession(db, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.Len(t, session.Token, SessionTokenLength*2)

	validated, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validated.User.ID)

	// Unknown token fails closed
	_, err = ValidateSession(db, "no-such-token")
	assert.Error(t, err)

	// Expired sessions are rejected and removed
	db.Model(&models.Session{}).Where("token = ?", session.Token).
		Update("expires_at", time.Now().Add(-time.Minute))
	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteSession(t *testing.T) {
	db := setupAuthTestDB(t)

	user, err := RegisterUser(db, "Ana García", "ana@example.com", "Str0ng!Password123")
	assert.NoError(t, err)

	session, err := CreateSession(db, user.ID, "", "")
	assert.NoError(t, err)

	assert.NoError(t, DeleteSession(db, session.Token))

	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	db := setupAuthTestDB(t)

	_, err := RegisterUser(db, "Ana García", "ana@example.com", "Str0ng!Password123")
	assert.NoError(t, err)

	_, err = RegisterUser(db, "Otra Ana", "ana@example.com", "Str0ng!Password123")
	assert.Error(t, err)
}

func TestRegisterUserEnforcesPasswordPolicy(t *testing.T) {
	db := setupAuthTestDB(t)

	_, err := RegisterUser(db, "Ana García", "ana@example.com", "short")
	assert.Error(t, err)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupAuthTestDB(t)

	user, err := RegisterUser(db, "Ana García", "ana@example.com", "Str0ng!Password123")
	assert.NoError(t, err)

	// Unknown email yields no token and no error
	token, err := GenerateResetToken(db, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, token)

	token, err = GenerateResetToken(db, "ana@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, token)

	// An open session must not survive the reset
	session, err := CreateSession(db, user.ID, "", "")
	assert.NoError(t, err)

	err = ResetPassword(db, token.Token, "N3w!Password456xyz")
	assert.NoError(t, err)

	var reloaded models.User
	db.First(&reloaded, "id = ?", user.ID)
	assert.True(t, VerifyPassword(reloaded.Password, "N3w!Password456xyz"))

	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)

	// Token is single use
	err = ResetPassword(db, token.Token, "An0ther!Password789")
	assert.Error(t, err)
}
