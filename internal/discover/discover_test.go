package discover_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"smudge/internal/discover"
	"smudge/internal/testsupport"
)

func TestFilesShallowSkipsSubdirectories(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.png", "b.jpg", "c.bmp", "d.png", "e.txt"} {
		testsupport.WriteFile(t, filepath.Join(root, name), 16)
	}
	testsupport.WriteFile(t, filepath.Join(root, "nested", "inner.png"), 16)

	files, err := discover.Files(root, discover.Options{})
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
	if len(files) != 5 {
		t.Fatalf("expected 5 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Dir(f) != root {
			t.Fatalf("shallow discovery descended into %q", f)
		}
	}
}

func TestFilesRecursiveIncludesDescendants(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "top.png"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "a", "one.png"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "a", "b", "two.png"), 16)

	files, err := discover.Files(root, discover.Options{Recursive: true})
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(files), files)
	}
}

func TestFilesExtensionFilter(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "keep.png"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "upper.PNG"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "keep.jpg"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "drop.gif"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "noext"), 16)

	files, err := discover.Files(root, discover.Options{Extensions: []string{".png", ".jpg"}})
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	sort.Strings(names)
	want := []string{"keep.jpg", "keep.png", "upper.PNG"}
	if len(names) != len(want) {
		t.Fatalf("unexpected files: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("file %d: got %q want %q", i, names[i], want[i])
		}
	}
}

func TestFilesEmptyFilterAcceptsEverything(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "anything.xyz"), 16)

	files, err := discover.Files(root, discover.Options{})
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
}

func TestFilesMissingRootIsFatal(t *testing.T) {
	if _, err := discover.Files(filepath.Join(t.TempDir(), "absent"), discover.Options{}); err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestFilesRootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.png")
	testsupport.WriteFile(t, file, 16)

	if _, err := discover.Files(file, discover.Options{}); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestFilesOrderStableWithinPass(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"c.png", "a.png", "b.png"} {
		testsupport.WriteFile(t, filepath.Join(root, name), 16)
	}

	first, err := discover.Files(root, discover.Options{})
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
	second, err := discover.Files(root, discover.Options{})
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("pass lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %q vs %q", i, first[i], second[i])
		}
	}
	if err := os.RemoveAll(root); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
