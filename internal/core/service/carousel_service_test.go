package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
	"github.com/intranet-portal/portal-api/internal/infrastructure/storage"
)

func TestCarouselService_Create(t *testing.T) {
	repo := &stubCarouselRepo{}
	images := &stubImageStore{}
	svc := NewCarouselService(repo, images, zerolog.Nop())

	slide, err := svc.Create(context.Background(), ports.SlideInput{
		Title:    "  <b>Bienvenidos</b> ",
		Text:     `Nuevo <script>alert(1)</script>portal & más`,
		Filename: "banner.png",
		Image:    strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if slide.ID == 0 || !slide.Active || slide.CreatedAt.IsZero() {
		t.Fatalf("unexpected slide: %+v", slide)
	}
	if slide.Title != "Bienvenidos" {
		t.Fatalf("title not sanitized: %q", slide.Title)
	}
	if strings.Contains(slide.Text, "<") || !strings.Contains(slide.Text, "portal & más") {
		t.Fatalf("text not sanitized: %q", slide.Text)
	}
	if slide.Image != "/uploads/banner.png" {
		t.Fatalf("unexpected image url: %q", slide.Image)
	}
}

func TestCarouselService_Create_Validation(t *testing.T) {
	svc := NewCarouselService(&stubCarouselRepo{}, &stubImageStore{}, zerolog.Nop())

	inputs := []ports.SlideInput{
		{Title: "", Image: strings.NewReader("x")},
		{Title: "<i></i>", Image: strings.NewReader("x")},
		{Title: "Hola"},
	}
	for _, in := range inputs {
		_, err := svc.Create(context.Background(), in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Message != msgSlideFieldsRequired {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestCarouselService_Create_OptionalText(t *testing.T) {
	svc := NewCarouselService(&stubCarouselRepo{}, &stubImageStore{}, zerolog.Nop())

	slide, err := svc.Create(context.Background(), ports.SlideInput{Title: "Hola", Filename: "a.png", Image: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if slide.Text != "" {
		t.Fatalf("expected empty text, got %q", slide.Text)
	}
}

func TestCarouselService_Create_Truncates(t *testing.T) {
	svc := NewCarouselService(&stubCarouselRepo{}, &stubImageStore{}, zerolog.Nop())

	slide, err := svc.Create(context.Background(), ports.SlideInput{
		Title:    strings.Repeat("á", maxSlideTitle+50),
		Filename: "a.png",
		Image:    strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if n := len([]rune(slide.Title)); n != maxSlideTitle {
		t.Fatalf("title has %d runes, want %d", n, maxSlideTitle)
	}
}

func TestCarouselService_Errors(t *testing.T) {
	imgErr := domain.NewValidationError("Formato de imagen no soportado")
	svc := NewCarouselService(&stubCarouselRepo{}, &stubImageStore{err: imgErr}, zerolog.Nop())
	if _, err := svc.Create(context.Background(), ports.SlideInput{Title: "t", Image: strings.NewReader("x")}); !errors.Is(err, imgErr) {
		t.Fatalf("expected image store error, got %v", err)
	}

	svc = NewCarouselService(&stubCarouselRepo{err: errBoom}, &stubImageStore{}, zerolog.Nop())
	if _, err := svc.Create(context.Background(), ports.SlideInput{Title: "t", Image: strings.NewReader("x")}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if _, err := svc.ListActive(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store failure, got %v", err)
	}
}

func TestCarouselService_Create_StripsEncodedMarkup(t *testing.T) {
	svc := NewCarouselService(&stubCarouselRepo{}, &stubImageStore{}, zerolog.Nop())

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"encoded script", "&lt;script&gt;alert(1)&lt;/script&gt;Hola", "Hola"},
		{"encoded tag", "&lt;b&gt;Hola&lt;/b&gt;", "Hola"},
		{"double encoded tag", "&amp;lt;img src=x onerror=alert(1)&amp;gt;Hola", "Hola"},
		{"plain ampersand", "Ventas &amp; Compras", "Ventas & Compras"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slide, err := svc.Create(context.Background(), ports.SlideInput{
				Title:    tt.title,
				Filename: "a.png",
				Image:    strings.NewReader("x"),
			})
			if err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			if slide.Title != tt.want {
				t.Fatalf("title = %q, want %q", slide.Title, tt.want)
			}
			if strings.ContainsAny(slide.Title, "<>") {
				t.Fatalf("markup survived: %q", slide.Title)
			}
		})
	}
}

func TestCarouselService_Create_RemovesImageWhenInsertFails(t *testing.T) {
	images := &stubImageStore{}
	svc := NewCarouselService(&stubCarouselRepo{err: errBoom}, images, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.SlideInput{Title: "t", Filename: "a.png", Image: strings.NewReader("x")})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if len(images.deleted) != 1 || images.deleted[0] != "/uploads/a.png" {
		t.Fatalf("expected saved image to be deleted, got %v", images.deleted)
	}
}

func TestCarouselService_Create_LeavesNoFileOnStoreFailure(t *testing.T) {
	dir := t.TempDir()
	images, err := storage.NewLocalImageStore(dir, "/uploads", 1<<20)
	if err != nil {
		t.Fatalf("NewLocalImageStore: %v", err)
	}
	svc := NewCarouselService(&stubCarouselRepo{err: errBoom}, images, zerolog.Nop())

	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	_, err = svc.Create(context.Background(), ports.SlideInput{Title: "t", Filename: "a.png", Image: bytes.NewReader(png)})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store failure, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty upload dir, found %d files", len(entries))
	}
}
