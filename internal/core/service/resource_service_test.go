package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestResourceService_DefaultCatalog(t *testing.T) {
	svc, err := NewResourceService("")
	if err != nil {
		t.Fatalf("NewResourceService returned error: %v", err)
	}
	catalog, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog returned error: %v", err)
	}
	if len(catalog) == 0 || len(catalog[0].Items) == 0 {
		t.Fatalf("expected built-in catalog, got %+v", catalog)
	}
	for _, item := range catalog[0].Items {
		if item.Name == "" || item.URL == "" {
			t.Fatalf("incomplete item: %+v", item)
		}
	}
}

func TestResourceService_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.yaml")
	content := `
- categoria: Políticas
  items:
    - nombre: Código de conducta
      url: /docs/codigo.pdf
      roles: [empleado]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	svc, err := NewResourceService(path)
	if err != nil {
		t.Fatalf("NewResourceService returned error: %v", err)
	}
	catalog, _ := svc.Catalog(context.Background())
	if len(catalog) != 1 || catalog[0].Category != "Políticas" || catalog[0].Items[0].Roles[0] != "empleado" {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
}

func TestResourceService_Errors(t *testing.T) {
	if _, err := NewResourceService(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("categoria: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewResourceService(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
