package person

import (
	"errors"
	"strings"
	"unicode"
)

// DefaultAvatar is assigned when a person is auto-provisioned from an event
const DefaultAvatar = "👤"

// ErrInvalidID indicates the normalized person id is empty
var ErrInvalidID = errors.New("invalid person id")

// Person represents a participant on the leaderboard
type Person struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null"`
	Avatar string `json:"avatar"`
}

// TableName overrides the table name used by GORM
func (Person) TableName() string {
	return "people"
}

// New creates a person with a normalized id. The avatar falls back to the
// default glyph when empty.
func New(id, name, avatar string) (Person, error) {
	normalized, err := NormalizeID(id)
	if err != nil {
		return Person{}, err
	}
	if avatar == "" {
		avatar = DefaultAvatar
	}
	return Person{ID: normalized, Name: name, Avatar: avatar}, nil
}

// Provision builds a person from a bare id, deriving a display name.
// Used when an event arrives for an id nobody registered yet.
func Provision(id string) (Person, error) {
	normalized, err := NormalizeID(id)
	if err != nil {
		return Person{}, err
	}
	return Person{ID: normalized, Name: DisplayName(normalized), Avatar: DefaultAvatar}, nil
}

// NormalizeID lowercases the id and strips everything outside [a-z0-9].
// An id that normalizes to the empty string is invalid.
func NormalizeID(id string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", ErrInvalidID
	}
	return b.String(), nil
}

// DisplayName capitalizes the first letter of an id
func DisplayName(id string) string {
	if id == "" {
		return id
	}
	runes := []rune(id)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
