package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero falls back to default", limit: 0, want: DefaultLimit},
		{name: "negative falls back to default", limit: -3, want: DefaultLimit},
		{name: "within range passes through", limit: 40, want: 40},
		{name: "above max is capped", limit: 500, want: MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLimit(tc.limit); got != tc.want {
				t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.limit, got, tc.want)
			}
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2026, 2, 10, 8, 30, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	parsed, err := ParseCursor(EncodeCursor(original))
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected parsed cursor")
	}
	if !parsed.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("created_at mismatch: got %s want %s", parsed.CreatedAt, original.CreatedAt)
	}
	if parsed.ID != original.ID {
		t.Fatalf("id mismatch: got %s want %s", parsed.ID, original.ID)
	}
}

func TestParseCursorEmptyIsNil(t *testing.T) {
	parsed, err := ParseCursor("   ")
	if err != nil {
		t.Fatalf("parse blank cursor: %v", err)
	}
	if parsed != nil {
		t.Fatal("expected nil cursor for blank input")
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	for _, value := range []string{"not-base64!", "bm8tc2VwYXJhdG9y", "MjAyNi0wMS0wMVQwMDowMDowMFp8bm90LWEtdXVpZA=="} {
		if _, err := ParseCursor(value); err == nil {
			t.Fatalf("expected error for cursor %q", value)
		}
	}
}

func TestBuildPage(t *testing.T) {
	type row struct {
		id        uuid.UUID
		createdAt time.Time
	}
	cursorOf := func(r row) Cursor { return Cursor{CreatedAt: r.createdAt, ID: r.id} }

	rows := make([]row, 4)
	for i := range rows {
		rows[i] = row{id: uuid.New(), createdAt: time.Now().Add(time.Duration(-i) * time.Minute)}
	}

	t.Run("surplus row produces next cursor", func(t *testing.T) {
		page := BuildPage(rows, 3, cursorOf)
		if len(page.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(page.Items))
		}
		if page.NextCursor == "" {
			t.Fatal("expected next cursor")
		}
		parsed, err := ParseCursor(page.NextCursor)
		if err != nil {
			t.Fatalf("parse next cursor: %v", err)
		}
		if parsed.ID != rows[2].id {
			t.Fatalf("cursor points at %s, want %s", parsed.ID, rows[2].id)
		}
	})

	t.Run("exact page has no next cursor", func(t *testing.T) {
		page := BuildPage(rows[:2], 2, cursorOf)
		if len(page.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(page.Items))
		}
		if page.NextCursor != "" {
			t.Fatalf("unexpected next cursor %q", page.NextCursor)
		}
	})
}
