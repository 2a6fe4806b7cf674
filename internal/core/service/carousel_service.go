package service

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

const (
	maxSlideTitle = 200
	maxSlideText  = 2000
)

// maxCleanPasses bounds the unescape/sanitize loop for nested entities.
const maxCleanPasses = 4

// CarouselService manages home page slides.
type CarouselService struct {
	repo   ports.CarouselRepository
	images ports.ImageStore
	policy *bluemonday.Policy
	log    zerolog.Logger
	now    func() time.Time
}

var _ ports.CarouselService = (*CarouselService)(nil)

func NewCarouselService(repo ports.CarouselRepository, images ports.ImageStore, log zerolog.Logger) *CarouselService {
	return &CarouselService{
		repo:   repo,
		images: images,
		policy: bluemonday.StrictPolicy(),
		log:    log,
		now:    time.Now,
	}
}

func (s *CarouselService) ListActive(ctx context.Context) ([]domain.Slide, error) {
	slides, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	return slides, nil
}

// Create stores the image and inserts an active slide. Title and image are
// required; text is optional. Markup is stripped from title and text. The
// image is removed again when the insert fails.
func (s *CarouselService) Create(ctx context.Context, in ports.SlideInput) (*domain.Slide, error) {
	title := s.clean(in.Title, maxSlideTitle)
	text := s.clean(in.Text, maxSlideText)
	if title == "" || in.Image == nil {
		return nil, domain.NewValidationError(msgSlideFieldsRequired)
	}

	url, err := s.images.Save(ctx, in.Filename, in.Image)
	if err != nil {
		return nil, err
	}

	slide := &domain.Slide{
		Title:     title,
		Text:      text,
		Image:     url,
		CreatedAt: s.now().UTC(),
		Active:    true,
	}
	if err := s.repo.Create(ctx, slide); err != nil {
		if delErr := s.images.Delete(ctx, url); delErr != nil {
			s.log.Error().Err(delErr).Str("image", url).Msg("failed to remove orphaned carousel image")
		}
		return nil, domain.StoreFailure(err)
	}

	s.log.Info().Int64("slide_id", slide.ID).Str("image", url).Msg("carousel slide created")
	return slide, nil
}

// clean strips markup and returns plain text truncated to max runes.
// Entity-encoded markup is decoded and stripped as well, until the value no
// longer changes.
func (s *CarouselService) clean(v string, max int) string {
	converged := false
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(v))
		if next == v {
			converged = true
			break
		}
		v = next
	}
	if !converged {
		// Still nesting entities: keep the escaped form.
		v = s.policy.Sanitize(v)
	}
	v = strings.TrimSpace(v)
	if r := []rune(v); len(r) > max {
		v = string(r[:max])
	}
	return v
}
