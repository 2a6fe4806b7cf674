package service

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

//go:embed resources.yaml
var defaultResources []byte

// ResourceService serves the document catalog of the resources page.
type ResourceService struct {
	catalog []domain.ResourceCategory
}

var _ ports.ResourceService = (*ResourceService)(nil)

// NewResourceService loads the catalog from path, or the built-in catalog
// when path is empty.
func NewResourceService(path string) (*ResourceService, error) {
	raw := defaultResources
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read resource catalog: %w", err)
		}
		raw = b
	}

	var catalog []domain.ResourceCategory
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse resource catalog: %w", err)
	}
	return &ResourceService{catalog: catalog}, nil
}

func (s *ResourceService) Catalog(context.Context) ([]domain.ResourceCategory, error) {
	return s.catalog, nil
}
