package entities

import (
	"time"
)

// DefaultLanguages is the reference set seeded at startup.
var DefaultLanguages = []string{
	"English",
	"Finnish",
	"French",
	"German",
	"Spanish",
	"Swedish",
}

type Language struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"` // e.g., "English", "Finnish"
}

// WordGroup is the root aggregate: one concept translated into several languages.
// Name caches the first translation's word and is rewritten on every create/update.
type WordGroup struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	OwnerID   *uint      `gorm:"index" json:"owner_id,omitempty"` // nil = public/system group
	Name      string     `gorm:"size:255;not null" json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Word struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	LanguageID uint       `gorm:"not null;uniqueIndex:idx_words_group_language,priority:2" json:"language_id"`
	Text       string     `gorm:"size:255;not null" json:"text"`
	GroupID    uint       `gorm:"not null;index;uniqueIndex:idx_words_group_language,priority:1" json:"group_id"`
	Language   *Language  `gorm:"foreignKey:LanguageID" json:"-"`
	Group      *WordGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}

type Synonym struct {
	WordID uint   `gorm:"primaryKey;autoIncrement:false" json:"word_id"`
	Text   string `gorm:"primaryKey;size:255" json:"text"`
	Word   *Word  `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"-"`
}

// Tag is shared by every word group; names are unique across the system.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

type WordGroupTag struct {
	GroupID uint       `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	TagID   uint       `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
	Group   *WordGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	Tag     *Tag       `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Language) TableName() string {
	return "languages"
}

func (WordGroup) TableName() string {
	return "word_groups"
}

func (Word) TableName() string {
	return "words"
}

func (Synonym) TableName() string {
	return "synonyms"
}

func (Tag) TableName() string {
	return "tags"
}

func (WordGroupTag) TableName() string {
	return "word_group_tags"
}

func (User) TableName() string {
	return "users"
}

// AllModels lists every model in migration order.
func AllModels() []any {
	return []any{
		&Language{},
		&User{},
		&WordGroup{},
		&Word{},
		&Synonym{},
		&Tag{},
		&WordGroupTag{},
	}
}
