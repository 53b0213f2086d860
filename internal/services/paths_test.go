package services

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestContainsTraversal(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/output/deck/slide-1.html", false},
		{"/output/../etc/passwd", true},
		{"/output/%2e%2e/etc/passwd", true},
		{"/output/%2E%2E/etc/passwd", true},
		{"/output/..%2fetc", true},
		{"/output/a..b.html", true}, // literal sequence anywhere is rejected
		{"/output/deck/", false},
		{"..", true},
		{"/output/%zz", true}, // undecodable counts as an attempt
	}
	for _, tc := range cases {
		if got := ContainsTraversal(tc.path); got != tc.want {
			t.Fatalf("ContainsTraversal(%q)=%v want=%v", tc.path, got, tc.want)
		}
	}
}

func TestResolveWithinRoot(t *testing.T) {
	root := t.TempDir()

	resolved, err := ResolveWithinRoot(root, "output/deck/slide-1.html")
	if err != nil {
		t.Fatalf("ResolveWithinRoot error: %v", err)
	}
	want := filepath.Join(root, "output", "deck", "slide-1.html")
	if resolved != want {
		t.Fatalf("resolved=%s want=%s", resolved, want)
	}
}

func TestResolveWithinRootEqualsRoot(t *testing.T) {
	root := t.TempDir()
	resolved, err := ResolveWithinRoot(root, "")
	if err != nil {
		t.Fatalf("ResolveWithinRoot error: %v", err)
	}
	rootAbs, _ := filepath.Abs(root)
	if resolved != rootAbs {
		t.Fatalf("resolved=%s want=%s", resolved, rootAbs)
	}
}

func TestResolveWithinRootRejectsEscape(t *testing.T) {
	root := t.TempDir()
	cases := []string{
		"../outside",
		"output/../../outside",
	}
	for _, rel := range cases {
		_, err := ResolveWithinRoot(root, rel)
		if !errors.Is(err, ErrPathOutsideRoot) {
			t.Fatalf("ResolveWithinRoot(%q) err=%v want ErrPathOutsideRoot", rel, err)
		}
	}
}

func TestResolveWithinRootRejectsSiblingPrefix(t *testing.T) {
	// A sibling dir sharing the root's name as a string prefix must
	// not pass the containment check.
	base := t.TempDir()
	root := filepath.Join(base, "work")
	_, err := ResolveWithinRoot(root, "../work-other/file")
	if !errors.Is(err, ErrPathOutsideRoot) {
		t.Fatalf("err=%v want ErrPathOutsideRoot", err)
	}
}
