package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the fixed-width ISO-8601 form used for every stored
// timestamp. Fixed width keeps lexical order equal to chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp normalises t to the precision and zone that survive storage.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads TimeLayout and, for rows written by other tools, RFC 3339
// and SQLite's CURRENT_TIMESTAMP form.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range []string{TimeLayout, time.RFC3339Nano, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func FormatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}

func ParseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := ParseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EncodeTags serialises tags as a JSON array; nil encodes as "[]".
func EncodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// DecodeTags is the inverse of EncodeTags. NULL and "" decode to an empty,
// non-nil slice.
func DecodeTags(s sql.NullString) ([]string, error) {
	tags := []string{}
	if !s.Valid || s.String == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(s.String), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

type recurrenceJSON struct {
	Type     RecurrenceType `json:"type"`
	Interval int            `json:"interval"`
	EndDate  *string        `json:"endDate,omitempty"`
}

// EncodeRecurrence serialises p as a JSON object; nil encodes as NULL.
func EncodeRecurrence(p *RecurrencePattern) (sql.NullString, error) {
	if p == nil {
		return sql.NullString{}, nil
	}
	rj := recurrenceJSON{Type: p.Type, Interval: p.Interval}
	if p.EndDate != nil {
		s := FormatTime(*p.EndDate)
		rj.EndDate = &s
	}
	b, err := json.Marshal(rj)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode recurrence: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// DecodeRecurrence is the inverse of EncodeRecurrence.
func DecodeRecurrence(s sql.NullString) (*RecurrencePattern, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var rj recurrenceJSON
	if err := json.Unmarshal([]byte(s.String), &rj); err != nil {
		return nil, fmt.Errorf("decode recurrence: %w", err)
	}
	p := &RecurrencePattern{Type: rj.Type, Interval: rj.Interval}
	if rj.EndDate != nil {
		end, err := ParseTime(*rj.EndDate)
		if err != nil {
			return nil, fmt.Errorf("decode recurrence: %w", err)
		}
		p.EndDate = &end
	}
	return p, nil
}

// NullString maps "" onto NULL for optional text columns.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
