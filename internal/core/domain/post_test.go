package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestGenerateExcerpt(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"first two sentences", "Hello world. This is great. More text.", "Hello world. This is great."},
		{"exactly two sentences", "Hello world. This is great", "Hello world. This is great"},
		{"single sentence", "Just one line", "Just one line"},
		{"markdown stripped", "## Heading. **Bold** move. `code` here.", "Heading. Bold move."},
		{"blank fragments skipped", "One... Two. Three.", "One. Two."},
		{"surrounding space trimmed", "   Padded start. Second. Third.  ", "Padded start. Second."},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GenerateExcerpt(tc.content); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGenerateExcerpt_Truncates(t *testing.T) {
	long := strings.Repeat("a", 120) + ". " + strings.Repeat("b", 60) + ". tail."
	got := GenerateExcerpt(long)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != 150 {
		t.Fatalf("expected 150 characters before the ellipsis, got %d", n)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 120)+". ") {
		t.Fatalf("unexpected prefix %q", got)
	}
}

func TestPost_ReadingTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{1, 1},
		{200, 1},
		{201, 2},
		{450, 3},
	}
	for _, tc := range cases {
		p := Post{Content: strings.TrimSpace(strings.Repeat("word ", tc.words))}
		if got := p.ReadingTime(); got != tc.want {
			t.Fatalf("%d words: expected %d minutes, got %d", tc.words, tc.want, got)
		}
	}
}

func TestPost_IsAuthoredBy(t *testing.T) {
	p := Post{Author: User{ID: "1"}}
	if !p.IsAuthoredBy("1") {
		t.Fatalf("expected author match")
	}
	if p.IsAuthoredBy("2") || p.IsAuthoredBy("") {
		t.Fatalf("unexpected author match")
	}
	if (&Post{}).IsAuthoredBy("") {
		t.Fatalf("empty ids must never match")
	}
}

func TestPost_MarshalJSON_MillisecondTimestamps(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"tenth of a second", time.Date(2024, 1, 15, 10, 0, 0, 100_000_000, time.UTC), "2024-01-15T10:00:00.100Z"},
		{"whole second", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), "2024-01-15T10:00:00.000Z"},
		{"sub-millisecond truncated", time.Date(2024, 1, 15, 10, 0, 0, 123_456_789, time.UTC), "2024-01-15T10:00:00.123Z"},
		{"non-UTC zone", time.Date(2024, 1, 15, 12, 0, 0, 5_000_000, time.FixedZone("EET", 2*3600)), "2024-01-15T10:00:00.005Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Post{ID: "1", Title: "Timestamps", CreatedAt: tc.at, UpdatedAt: tc.at, Tags: Tags{}}
			raw, err := json.Marshal(p)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var fields map[string]any
			if err := json.Unmarshal(raw, &fields); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if fields["createdAt"] != tc.want || fields["updatedAt"] != tc.want {
				t.Fatalf("expected %q, got createdAt=%v updatedAt=%v", tc.want, fields["createdAt"], fields["updatedAt"])
			}

			var back Post
			if err := json.Unmarshal(raw, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !back.CreatedAt.Equal(tc.at.Truncate(time.Millisecond)) || back.ID != "1" || back.Title != "Timestamps" {
				t.Fatalf("round trip lost data: %+v", back)
			}
		})
	}
}
