package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := Open("file::memory:?cache=shared")
	assert.NoError(t, err)
	// Shared-cache memory DBs persist across connections within the
	// process; start each test from a clean slate.
	assert.NoError(t, db.Where("1 = 1").Delete(&Message{}).Error)
	assert.NoError(t, db.Where("1 = 1").Delete(&Session{}).Error)
	return db
}

func TestCreateAndGetSession(t *testing.T) {
	db := SetupTestDB(t)

	session, err := CreateSession(db)
	assert.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	got, err := GetSession(db, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestGetSession_Unknown(t *testing.T) {
	db := SetupTestDB(t)

	_, err := GetSession(db, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAppendMessageAndHistory(t *testing.T) {
	db := SetupTestDB(t)

	session, err := CreateSession(db)
	assert.NoError(t, err)

	assert.NoError(t, AppendMessage(db, session.ID, "user", "Find the weather in Islamabad"))
	assert.NoError(t, AppendMessage(db, session.ID, "model", "It is Clear in Islamabad with a temperature of 29 and humidity of 40%."))
	assert.NoError(t, AppendMessage(db, session.ID, "user", "What about Karachi?"))

	history, err := History(db, session.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "Find the weather in Islamabad", history[0].Content)
	assert.Equal(t, "What about Karachi?", history[2].Content)
}

func TestHistory_Limit(t *testing.T) {
	db := SetupTestDB(t)

	session, err := CreateSession(db)
	assert.NoError(t, err)

	for _, content := range []string{"one", "two", "three", "four"} {
		assert.NoError(t, AppendMessage(db, session.ID, "user", content))
	}

	history, err := History(db, session.ID, 2)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	// Most recent messages, oldest first
	assert.Equal(t, "three", history[0].Content)
	assert.Equal(t, "four", history[1].Content)
}

func TestHistory_IsolatedPerSession(t *testing.T) {
	db := SetupTestDB(t)

	a, _ := CreateSession(db)
	b, _ := CreateSession(db)
	assert.NoError(t, AppendMessage(db, a.ID, "user", "hello a"))
	assert.NoError(t, AppendMessage(db, b.ID, "user", "hello b"))

	history, err := History(db, a.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "hello a", history[0].Content)
}
