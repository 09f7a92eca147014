package models

import (
	"testing"
	"time"
)

func TestLink_PadsToFourDigits(t *testing.T) {
	cases := []struct {
		base string
		id   uint64
		want string
	}{
		{"https://blog.example.com", 2, "https://blog.example.com/0002"},
		{"https://blog.example.com/", 42, "https://blog.example.com/0042"},
		{"https://x.in/b", 12345, "https://x.in/b/12345"},
	}
	for _, c := range cases {
		if got := Link(c.base, c.id); got != c.want {
			t.Errorf("Link(%q, %d) = %q, want %q", c.base, c.id, got, c.want)
		}
	}
}

func TestPageName(t *testing.T) {
	if got := PageName(7, "php"); got != "0007.php" {
		t.Errorf("PageName = %q", got)
	}
}

func TestContext_Keys(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	p := &Post{ID: 3, Slug: "third", Title: "Third", Timestamp: ts, BodyHTML: "<p>x</p>", Permalink: "u/0003"}
	ctx := p.Context()
	if ctx["date"] != "2024-03-01 09:30:00" {
		t.Errorf("date = %v", ctx["date"])
	}
	if ctx["body"] != "<p>x</p>" || ctx["link"] != "u/0003" || ctx["num"] != uint64(3) {
		t.Errorf("unexpected context: %v", ctx)
	}
	if tags, ok := ctx["tags"].([]string); !ok || tags == nil {
		t.Errorf("tags should be a non-nil slice, got %#v", ctx["tags"])
	}
	var nilPost *Post
	if nilPost.Context() != nil {
		t.Error("nil post should yield nil context")
	}
}
