package relational

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational/models"
)

// CarouselRepository implements ports.CarouselRepository.
type CarouselRepository struct {
	db bun.IDB
}

func NewCarouselRepository(db bun.IDB) *CarouselRepository {
	return &CarouselRepository{db: db}
}

var _ ports.CarouselRepository = (*CarouselRepository)(nil)

// ListActive returns active slides, newest first.
func (r *CarouselRepository) ListActive(ctx context.Context) ([]domain.Slide, error) {
	var rows []models.Slide
	err := r.db.NewSelect().
		Model(&rows).
		Where("c.is_active = ?", true).
		OrderExpr("c.created_at DESC, c.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active slides: %w", err)
	}

	slides := make([]domain.Slide, 0, len(rows))
	for _, row := range rows {
		slides = append(slides, domain.Slide{
			ID:        row.ID,
			Title:     row.Title,
			Text:      row.Text.String,
			Image:     row.Image,
			CreatedAt: row.CreatedAt,
			Active:    row.IsActive,
		})
	}
	return slides, nil
}

// Create inserts the slide and sets its ID.
func (r *CarouselRepository) Create(ctx context.Context, slide *domain.Slide) error {
	row := &models.Slide{
		Title:     slide.Title,
		Text:      sql.NullString{String: slide.Text, Valid: slide.Text != ""},
		Image:     slide.Image,
		CreatedAt: slide.CreatedAt,
		IsActive:  slide.Active,
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert slide: %w", err)
	}
	slide.ID = row.ID
	return nil
}
