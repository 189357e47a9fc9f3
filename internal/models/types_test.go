package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDecodesLegacyShapes(t *testing.T) {
	raw := `{
		"id": "1712345678901",
		"title": "Demo",
		"slug": "demo",
		"featured": "true",
		"thumbnail": {"data": {"attributes": {"url": "/t.png"}}},
		"images": {"data": [{"attributes": {"url": "/a.png"}}, "/b.png"]},
		"createdAt": "2024-03-01T10:00:00.000Z",
		"unknownField": 3
	}`
	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, ID(1712345678901), p.ID)
	assert.True(t, bool(p.Featured))
	assert.Equal(t, Media("/t.png"), p.Thumbnail)
	assert.Equal(t, MediaList{"/a.png", "/b.png"}, p.Images)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt.Time)
	assert.True(t, p.UpdatedAt.IsZero())
}

func TestFlagForms(t *testing.T) {
	for in, want := range map[string]bool{
		`true`: true, `"true"`: true, `1`: true, `"1"`: true,
		`false`: false, `"false"`: false, `0`: false, `null`: false, `"on"`: false,
	} {
		var f Flag
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		assert.Equal(t, want, bool(f), in)
	}
	out, err := json.Marshal(struct {
		F Flag `json:"f"`
	}{true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":true}`, string(out))
}

func TestMediaEncodesAsString(t *testing.T) {
	var m Media
	require.NoError(t, json.Unmarshal([]byte(`{"url":"/x.png"}`), &m))
	assert.Equal(t, Media("/x.png"), m)
	require.NoError(t, json.Unmarshal([]byte(`{"unexpected":true}`), &m))
	assert.Equal(t, Media(""), m)

	p := Project{Title: "Demo", Slug: "demo"}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "thumbnail")
	assert.Contains(t, string(out), `"images":[]`)
	assert.NotContains(t, string(out), "createdAt")
}

func TestIDForms(t *testing.T) {
	for in, want := range map[string]ID{
		`42`: 42, `"42"`: 42, `1.712345678901e12`: 1712345678901, `"abc"`: 0, `null`: 0,
	} {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(in), &id), in)
		assert.Equal(t, want, id, in)
	}
	id, ok := ParseID(" 17 ")
	assert.True(t, ok)
	assert.Equal(t, ID(17), id)
	_, ok = ParseID("seventeen")
	assert.False(t, ok)
}

func TestTimestampForms(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for in, want := range map[string]time.Time{
		`"2024-01-15"`:           day,
		`"2024-01-15T00:00:00Z"`: day,
		`"2024-01-15T00:00"`:     day,
		`1705276800000`:          day,
		`""`:                     {},
		`null`:                   {},
		`"last tuesday"`:         {},
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, want.Equal(ts.Time), in)
	}

	out, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(Timestamp{day})
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15T00:00:00Z"`, string(out))
}

func TestBlogPostStampDefaultsPublishedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	var p BlogPost
	p.Stamp(now, true)
	assert.Equal(t, p.CreatedAt, p.PublishedAt)
	assert.Equal(t, now.Truncate(time.Millisecond), p.CreatedAt.Time)

	later := now.Add(time.Hour)
	p.Stamp(later, false)
	assert.Equal(t, now.Truncate(time.Millisecond), p.PublishedAt.Time)
	assert.Equal(t, later.Truncate(time.Millisecond), p.UpdatedAt.Time)
}

func TestBlogPostSortKeyFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2023, 5, 5, 0, 0, 0, 0, time.UTC)
	p := BlogPost{Meta: Meta{CreatedAt: Timestamp{created}}}
	assert.Equal(t, created, p.SortKey())
}

func TestRecordInterface(t *testing.T) {
	for _, r := range []Record{&Project{}, &Service{}, &BlogPost{}, &TeamMember{}, &Testimonial{}} {
		r.Base().ID = 9
		assert.Equal(t, ID(9), r.Base().ID)
	}
}

func TestIntForms(t *testing.T) {
	for in, want := range map[string]Int{
		`5`: 5, `"5"`: 5, `" 4 "`: 4, `4.0`: 4, `"3.0"`: 3,
		`"five"`: 0, `null`: 0, `true`: 0, `[5]`: 0,
	} {
		var n Int
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, want, n, in)
	}
}

func TestStringListForms(t *testing.T) {
	cases := map[string]StringList{
		`["Go","React"]`:     {"Go", "React"},
		`"Go, React,, "`:     {"Go", "React"},
		`"Go"`:               {"Go"},
		`["Go", 3, {"a":1}]`: {"Go", "3"},
		`{"a":1}`:            {},
		`null`:               nil,
	}
	for in, want := range cases {
		var l StringList
		require.NoError(t, json.Unmarshal([]byte(in), &l), in)
		assert.Equal(t, want, l, in)
	}
}

func TestTextForms(t *testing.T) {
	for in, want := range map[string]Text{
		`"2014"`: "2014", `2014`: "2014", `true`: "true", `{"y":1}`: "", `null`: "",
	} {
		var x Text
		require.NoError(t, json.Unmarshal([]byte(in), &x), in)
		assert.Equal(t, want, x, in)
	}
}

func TestSocialLinksIgnoresOddValues(t *testing.T) {
	var m TeamMember
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ada","socialLinks":"n/a"}`), &m))
	assert.Equal(t, "Ada", m.Name)
	assert.Equal(t, SocialLinks{}, m.SocialLinks)

	require.NoError(t, json.Unmarshal([]byte(`{"socialLinks":{"github":"g","linkedin":1}}`), &m))
	assert.Equal(t, SocialLinks{GitHub: "g"}, m.SocialLinks)
}

func TestTestimonialRatingFromString(t *testing.T) {
	var tm Testimonial
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ann","content":"Great","rating":"5"}`), &tm))
	assert.Equal(t, Int(5), tm.Rating)
	out, err := json.Marshal(tm)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"rating":5`)
}
