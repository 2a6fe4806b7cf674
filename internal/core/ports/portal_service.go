package ports

import (
	"context"
	"io"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

// SlideInput is a carousel upload. Image is read once.
type SlideInput struct {
	Title    string
	Text     string
	Filename string
	Image    io.Reader
}

type CarouselService interface {
	ListActive(ctx context.Context) ([]domain.Slide, error)
	Create(ctx context.Context, in SlideInput) (*domain.Slide, error)
}

type CarouselRepository interface {
	ListActive(ctx context.Context) ([]domain.Slide, error)
	Create(ctx context.Context, slide *domain.Slide) error
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Delete removes an image by the URL Save returned. A missing file is
	// not an error.
	Delete(ctx context.Context, url string) error
}

type BirthdayService interface {
	Today(ctx context.Context) ([]domain.User, error)
}

type ResourceService interface {
	Catalog(ctx context.Context) ([]domain.ResourceCategory, error)
}
