package dict

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	b := NewBuilder()
	for w, f := range map[string]int{"hello": 200, "help": 150} {
		if err := b.AddWord(w, f); err != nil {
			t.Fatal(err)
		}
	}
	data, width, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "test.dict")
	if err := WriteFile(path, data, width); err != nil {
		t.Fatal(err)
	}
	s, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.CharWidth() != width {
		t.Errorf("char width = %d, want %d", s.CharWidth(), width)
	}
	if f, ok := s.FrequencyOf("hello"); !ok || f != 200 {
		t.Errorf("FrequencyOf(hello) = (%d,%v)", f, ok)
	}
}

func TestFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.dict")
	os.WriteFile(short, []byte{1, 2}, 0644)
	if _, err := ReadFile(short); err == nil {
		t.Error("truncated header must fail")
	}

	wrong := filepath.Join(dir, "wrong.dict")
	os.WriteFile(wrong, []byte("NOPE\x01\x01data"), 0644)
	if _, err := ReadFile(wrong); err == nil {
		t.Error("wrong magic must fail")
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.dict")); err == nil {
		t.Error("missing file must fail")
	}
}
