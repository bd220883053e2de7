package camera

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestMockCamera_ImplementsCamera(t *testing.T) {
	var _ Camera = NewMockCamera(8, 8, 0) // compile-time check
	var _ FrameWriter = ImageFileWriter{}
}

func TestMockCamera_FrameSize(t *testing.T) {
	cam := NewMockCamera(32, 24, 0)
	f, err := cam.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer f.Close()

	img, err := f.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 32, 24) {
		t.Errorf("bounds = %v, want 32x24", got)
	}
}

func TestMockCamera_FailAfter(t *testing.T) {
	cam := NewMockCamera(4, 4, 2)
	for i := 0; i < 2; i++ {
		if _, err := cam.Read(); err != nil {
			t.Fatalf("read %d: unexpected error %v", i, err)
		}
	}
	_, err := cam.Read()
	if !errors.Is(err, ErrFrameUnavailable) {
		t.Errorf("third read error = %v, want ErrFrameUnavailable", err)
	}
	if cam.Reads() != 2 {
		t.Errorf("Reads() = %d, want 2", cam.Reads())
	}
}

func TestMockCamera_NeverFailsWhenZero(t *testing.T) {
	cam := NewMockCamera(4, 4, 0)
	for i := 0; i < 50; i++ {
		if _, err := cam.Read(); err != nil {
			t.Fatalf("read %d: unexpected error %v", i, err)
		}
	}
}

func TestMockCamera_ReadAfterClose(t *testing.T) {
	cam := NewMockCamera(4, 4, 0)
	if err := cam.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := cam.Read(); !errors.Is(err, ErrFrameUnavailable) {
		t.Errorf("read after close = %v, want ErrFrameUnavailable", err)
	}
	if err := cam.Close(); err == nil {
		t.Error("second Close should report an error")
	}
}

func TestImageFrame_NilImage(t *testing.T) {
	f := NewImageFrame(nil)
	if _, err := f.Image(); !errors.Is(err, ErrFrameUnavailable) {
		t.Errorf("Image() on empty frame = %v, want ErrFrameUnavailable", err)
	}
}

func TestImageFileWriter_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame_0.png")

	cam := NewMockCamera(16, 16, 0)
	f, err := cam.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := (ImageFileWriter{}).WriteFrame(path, f); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("reopen written file: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("written image bounds = %v, want 16x16", img.Bounds())
	}
}

func TestImageFileWriter_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame_0.png")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewImageFrame(imaging.New(4, 4, image.Black.C))
	if err := (ImageFileWriter{}).WriteFrame(path, f); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if _, err := imaging.Open(path); err != nil {
		t.Errorf("file should hold a valid PNG after overwrite: %v", err)
	}
}

func TestImageFileWriter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frame_0.png")
	f := NewImageFrame(imaging.New(4, 4, image.Black.C))
	if err := (ImageFileWriter{}).WriteFrame(path, f); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}
