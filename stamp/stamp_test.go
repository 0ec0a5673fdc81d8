package stamp

import (
	"errors"
	"testing"
)

func TestRenderQR(t *testing.T) {
	img, err := Render(KindQR, "https://example.com/form/42", 128)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("got %dx%d, want 128x128", b.Dx(), b.Dy())
	}
}

func TestRenderPDF417(t *testing.T) {
	img, err := Render(KindPDF417, "DOC-2024-0042", 160)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 160 {
		t.Errorf("width %d, want 160", b.Dx())
	}
	if b.Dy() < 1 || b.Dy() > 160 {
		t.Errorf("height %d outside expected range", b.Dy())
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := Render("aztec", "x", 64); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v, want ErrUnknownKind", err)
	}
}

func TestRenderDefaultSize(t *testing.T) {
	img, err := Render(KindQR, "x", 0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("default size %d, want 128", img.Bounds().Dx())
	}
}
