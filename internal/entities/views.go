package entities

import "time"

// TranslationInput is one language's rendering of a word group as submitted by a caller.
type TranslationInput struct {
	LanguageName string   `json:"languageName" binding:"required,oneof=English Finnish French German Spanish Swedish"`
	Word         string   `json:"word" binding:"required"`
	Synonyms     []string `json:"synonyms" binding:"dive,required"`
}

// WordGroupInput is the payload for creating or replacing a word group.
// User-authored and AI-generated payloads share this shape.
type WordGroupInput struct {
	Translations []TranslationInput `json:"translations" binding:"required,min=2,dive"`
	Tags         []string           `json:"tags" binding:"dive,required"`
}

type TranslationView struct {
	LanguageName string   `json:"languageName"`
	Word         string   `json:"word"`
	Synonyms     []string `json:"synonyms"`
}

// WordGroupView is a word group rebuilt from its normalized rows.
// Synonyms and Tags are sorted and never nil.
type WordGroupView struct {
	ID           uint              `json:"id"`
	OwnerID      *uint             `json:"ownerId,omitempty"`
	Translations []TranslationView `json:"translations"`
	Tags         []string          `json:"tags"`
	CreatedAt    *time.Time        `json:"createdAt"`
	UpdatedAt    *time.Time        `json:"updatedAt"`
}

// ListOptions selects a window of word groups by id range.
// Groups with offset < id <= offset+limit are returned unless GetAll is set.
type ListOptions struct {
	Offset int
	Limit  int
	GetAll bool
}

// PaginationInfo reports Pages as total/limit rounded down, so a partial
// last page is not counted.
type PaginationInfo struct {
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}
