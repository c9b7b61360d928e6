package pagination

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{CreatedAt: time.Date(2026, 10, 15, 9, 30, 0, 123, time.UTC), ID: uuid.New()}
	out, err := ParseCursor(EncodeCursor(in))
	if err != nil {
		t.Fatalf("ParseCursor: %v", err)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) || out.ID != in.ID {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	if c, err := ParseCursor("  "); err != nil || c != nil {
		t.Fatalf("expected nil cursor for blank input, got %v %v", c, err)
	}
	if _, err := ParseCursor("not-base64!"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{0: DefaultLimit, -3: DefaultLimit, 10: 10, MaxLimit + 1: MaxLimit}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
	if LimitWithBuffer(10) != 11 {
		t.Fatal("expected buffer of one")
	}
}

func TestEncodeCursorIsURLSafe(t *testing.T) {
	c := EncodeCursor(Cursor{CreatedAt: time.Date(2026, 10, 15, 23, 59, 59, 999999999, time.UTC), ID: uuid.New()})
	if strings.ContainsAny(c, "+/=") {
		t.Fatalf("cursor %q is not url safe", c)
	}
}

func TestTrim(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	at := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	cursorOf := func(id uuid.UUID) Cursor { return Cursor{CreatedAt: at, ID: id} }

	rows, next := Trim(ids, 2, cursorOf)
	if len(rows) != 2 || next == "" {
		t.Fatalf("expected two rows and a cursor, got %d %q", len(rows), next)
	}
	parsed, err := ParseCursor(next)
	if err != nil || parsed.ID != ids[1] {
		t.Fatalf("cursor should point at the last kept row: %v %v", parsed, err)
	}

	rows, next = Trim(ids[:2], 2, cursorOf)
	if len(rows) != 2 || next != "" {
		t.Fatalf("expected last page without cursor, got %d %q", len(rows), next)
	}
}
