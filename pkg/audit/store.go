package audit

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/secrets-api/pkg/db"
)

// Store handles audit message persistence to database
type Store struct {
	db *gorm.DB
}

// Message is a persisted audit record
type Message struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Facility  int       `json:"facility"`
	Severity  int       `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
	Hostname  string    `json:"hostname"`
	Appname   string    `json:"appname"`
	Procid    string    `json:"procid"`
	Msgid     string    `json:"msgid"`
	Sdata     string    `json:"sdata" gorm:"type:jsonb"`
	Message   string    `json:"message"`
}

// TableName maps Message onto the messages table
func (Message) TableName() string {
	return "messages"
}

// NewStore creates a new audit store from AUDIT_DATABASE_URL, logging SQL
// according to logLevel. Returns nil if AUDIT_DATABASE_URL is not set
// (audit DB disabled).
func NewStore(logLevel string) (*Store, error) {
	dbURL := db.AuditURL()
	if dbURL == "" {
		return nil, nil
	}

	conn, err := db.Connect(db.Config{URL: dbURL, LogLevel: logLevel})
	if err != nil {
		return nil, err
	}
	return &Store{db: conn}, nil
}

// NewStoreWithDB creates a store with an existing database connection.
// Useful for testing with sqlmock.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save persists an audit event to the database
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	hostname, _ := os.Hostname()
	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return err
	}

	return s.db.Create(&Message{
		Facility:  event.Facility(),
		Severity:  int(event.Severity()),
		Timestamp: time.Now().UTC(),
		Hostname:  hostname,
		Appname:   AppName,
		Procid:    strconv.Itoa(os.Getpid()),
		Msgid:     event.MessageID(),
		Sdata:     string(sdata),
		Message:   event.Message(),
	}).Error
}

// Recent returns up to limit messages, newest first. An empty msgid
// matches every message.
func (s *Store) Recent(msgid string, limit int) ([]Message, error) {
	var messages []Message

	query := s.db.Order("timestamp desc").Limit(limit)
	if msgid != "" {
		query = query.Where("msgid = ?", msgid)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// DB returns the underlying database connection (for testing)
func (s *Store) DB() *gorm.DB {
	return s.db
}
