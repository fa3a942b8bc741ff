package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Session is one chat conversation
type Session struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Messages  []Message `gorm:"foreignKey:SessionID"`
}

// Message is one utterance within a session
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"index"`
	Role      string // "user" or "model"
	Content   string
	CreatedAt time.Time
}

// Open opens the sqlite conversation store and runs migrations
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Session{}, &Message{}); err != nil {
		return nil, err
	}
	return db, nil
}

// CreateSession starts a new conversation
func CreateSession(db *gorm.DB) (*Session, error) {
	session := &Session{ID: uuid.New().String(), CreatedAt: time.Now()}
	if err := db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession fetches a session by ID
func GetSession(db *gorm.DB, id string) (*Session, error) {
	var session Session
	if err := db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// AppendMessage records one utterance in a session
func AppendMessage(db *gorm.DB, sessionID, role, content string) error {
	msg := &Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return db.Create(msg).Error
}

// History returns the most recent messages of a session in
// chronological order. A limit of 0 means no limit.
func History(db *gorm.DB, sessionID string, limit int) ([]Message, error) {
	query := db.Where("session_id = ?", sessionID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	// Reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
