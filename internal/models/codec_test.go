package models

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_RoundTrip(t *testing.T) {
	tags := []string{"groceries", "with \"quotes\"", "ünïcode", ""}

	enc, err := EncodeTags(tags)
	require.NoError(t, err)

	dec, err := DecodeTags(sql.NullString{String: enc, Valid: true})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(tags, dec))
}

func TestTags_EmptyForms(t *testing.T) {
	enc, err := EncodeTags(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", enc)

	for _, in := range []sql.NullString{{}, {String: "", Valid: true}, {String: "null", Valid: true}, {String: "[]", Valid: true}} {
		dec, err := DecodeTags(in)
		require.NoError(t, err)
		assert.NotNil(t, dec)
		assert.Empty(t, dec)
	}
}

func TestTags_DecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeTags(sql.NullString{String: "{not json", Valid: true})
	require.Error(t, err)
}

func TestRecurrence_RoundTrip(t *testing.T) {
	end := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	patterns := []*RecurrencePattern{
		nil,
		{Type: RecurrenceDaily, Interval: 1},
		{Type: RecurrenceMonthly, Interval: 3, EndDate: &end},
	}

	for _, p := range patterns {
		enc, err := EncodeRecurrence(p)
		require.NoError(t, err)
		assert.Equal(t, p != nil, enc.Valid)

		dec, err := DecodeRecurrence(enc)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(p, dec))
	}
}

func TestRecurrence_WireFormat(t *testing.T) {
	end := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	enc, err := EncodeRecurrence(&RecurrencePattern{Type: RecurrenceWeekly, Interval: 2, EndDate: &end})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"weekly","interval":2,"endDate":"2026-01-02T03:04:05.006Z"}`, enc.String)
}

func TestParseTime_AcceptedLayouts(t *testing.T) {
	want := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

	for _, s := range []string{"2026-10-15T08:30:00.000Z", "2026-10-15T10:30:00+02:00", "2026-10-15 08:30:00"} {
		got, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}

	_, err := ParseTime("yesterday")
	require.Error(t, err)
}

func TestFormatTime_SortsChronologically(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 5, 100_000_000, time.UTC)
	b := a.Add(20 * time.Millisecond)
	assert.Less(t, FormatTime(a), FormatTime(b))
}

func TestNullTime(t *testing.T) {
	ns := FormatNullTime(nil)
	assert.False(t, ns.Valid)

	got, err := ParseNullTime(ns)
	require.NoError(t, err)
	assert.Nil(t, got)

	now := Timestamp(time.Now())
	got, err = ParseNullTime(FormatNullTime(&now))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, now, *got)
}
