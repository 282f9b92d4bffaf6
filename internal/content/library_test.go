package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write test post failed: %v", err)
	}
}

func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	return NewLibrary(dir, 160), dir
}

func TestLibraryAllSortedByDateDesc(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writePost(t, dir, "older.md", "---\ntitle: Older\ndate: 2024-01-01\n---\nold body\n")
	writePost(t, dir, "newer.md", "---\ntitle: Newer\ndate: 2025-06-01\n---\nnew body\n")

	posts, err := lib.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "newer" || posts[1].Slug != "older" {
		t.Fatalf("unexpected order: %s, %s", posts[0].Slug, posts[1].Slug)
	}
}

func TestLibrarySlugFromFrontMatterOverridesFilename(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writePost(t, dir, "file-name.md", "---\nslug: custom-slug\ntitle: T\ndate: 2025-01-01\n---\nbody\n")

	post, err := lib.BySlug("custom-slug")
	if err != nil {
		t.Fatalf("BySlug failed: %v", err)
	}
	if post == nil {
		t.Fatal("expected lookup by front matter slug to succeed")
	}
	if got, _ := lib.BySlug("file-name"); got != nil {
		t.Fatal("filename should not be used as slug when front matter overrides it")
	}
}

func TestLibraryBySlugMissing(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writePost(t, dir, "a.md", "---\ntitle: A\ndate: 2025-01-01\n---\nbody\n")

	post, err := lib.BySlug("nope")
	if err != nil {
		t.Fatalf("BySlug failed: %v", err)
	}
	if post != nil {
		t.Fatal("missing slug should return nil")
	}
}

func TestLibraryIndexExcerptAndTags(t *testing.T) {
	lib, dir := newTestLibrary(t)
	long := strings.Repeat("x", 300)
	writePost(t, dir, "a.md", "---\ntitle: A\ndate: 2025-01-02\ntags: [a, b]\n---\n"+long+"\n")
	writePost(t, dir, "b.md", "---\ntitle: B\ndate: 2025-01-01\ntags: [a]\nexcerpt: custom excerpt\n---\nshort body\n")

	index, err := lib.Index()
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if len(index.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(index.Posts))
	}
	for _, post := range index.Posts {
		if post.Content != "" {
			t.Fatalf("index posts should not carry content: %s", post.Slug)
		}
	}
	if index.Posts[0].Excerpt != strings.Repeat("x", 160)+"..." {
		t.Fatalf("excerpt should be first 160 chars: %q", index.Posts[0].Excerpt)
	}
	if index.Posts[1].Excerpt != "custom excerpt" {
		t.Fatalf("front matter excerpt should win: %q", index.Posts[1].Excerpt)
	}
	if index.Tags["a"] != 2 || index.Tags["b"] != 1 {
		t.Fatalf("unexpected tag counts: %v", index.Tags)
	}
}

func TestLibraryByTag(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writePost(t, dir, "a.md", "---\ntitle: A\ndate: 2025-01-02\ntags: [go]\n---\nbody\n")
	writePost(t, dir, "b.md", "---\ntitle: B\ndate: 2025-01-01\ntags: [web]\n---\nbody\n")

	posts, err := lib.ByTag("go")
	if err != nil {
		t.Fatalf("ByTag failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "a" {
		t.Fatalf("unexpected ByTag result: %v", posts)
	}

	empty, err := lib.ByTag("missing")
	if err != nil {
		t.Fatalf("ByTag failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("unknown tag should return empty list: %v", empty)
	}
}

func TestLibrarySkipsBrokenFile(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writePost(t, dir, "good.md", "---\ntitle: Good\ndate: 2025-01-01\n---\nbody\n")
	writePost(t, dir, "bad.md", "---\ntitle: [unclosed\n---\nbody\n")
	writePost(t, dir, "notes.txt", "not markdown")

	posts, err := lib.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "good" {
		t.Fatalf("broken file should be skipped: %v", posts)
	}
}

func TestLibraryReload(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writePost(t, dir, "a.md", "---\ntitle: A\ndate: 2025-01-01\n---\nbody\n")

	if posts, _ := lib.All(); len(posts) != 1 {
		t.Fatal("expected 1 post on first load")
	}

	writePost(t, dir, "b.md", "---\ntitle: B\ndate: 2025-01-02\n---\nbody\n")
	if posts, _ := lib.All(); len(posts) != 1 {
		t.Fatal("cached load should not pick up new files")
	}

	lib.Reload()
	if posts, _ := lib.All(); len(posts) != 2 {
		t.Fatal("expected new file after Reload")
	}
}

func TestParseDateFormats(t *testing.T) {
	cases := map[string]string{
		"2025-03-04":           "2025-03-04T00:00:00Z",
		"2025-03-04T10:20:30Z": "2025-03-04T10:20:30Z",
		"2025-03-04 10:20:30":  "2025-03-04T10:20:30Z",
	}
	for input, want := range cases {
		got := parseDate(input)
		if got.Format(time.RFC3339) != want {
			t.Fatalf("parseDate(%q) = %s, want %s", input, got.Format(time.RFC3339), want)
		}
	}
}
