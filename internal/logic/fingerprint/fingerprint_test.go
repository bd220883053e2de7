package fingerprint

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBytes_KnownValues(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, "0000005381"},
		{"single_byte", []byte("a"), "0000177670"},
		{"two_bytes", []byte("ab"), "0005863208"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bytes(tc.in); got != tc.want {
				t.Errorf("Bytes(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestBytes_AlwaysTenDigits(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF, 0x00, 0x7F}, 4096)
	got := Bytes(data)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10 (%s)", len(got), got)
	}
	for _, r := range got {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in %s", r, got)
		}
	}
}

func TestReader_MatchesBytes(t *testing.T) {
	data := bytes.Repeat([]byte("webcam"), 1000)
	got, err := Reader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if want := Bytes(data); got != want {
		t.Errorf("Reader = %s, Bytes = %s", got, want)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opencv_frame_0.png")
	if err := os.WriteFile(path, []byte("ab"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != "0005863208" {
		t.Errorf("File = %s, want 0005863208", got)
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
