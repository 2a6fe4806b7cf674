package directory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

// StaticAccount is one account of the development directory file.
type StaticAccount struct {
	Account      string `yaml:"account"`
	PasswordHash string `yaml:"password_hash"`
	DisplayName  string `yaml:"display_name"`
	Email        string `yaml:"email"`
	Department   string `yaml:"department"`
	Disabled     bool   `yaml:"disabled"`
}

type staticFile struct {
	Users []StaticAccount `yaml:"users"`
}

// StaticDirectory serves a fixed set of bcrypt-protected accounts. It stands
// in for Active Directory on developer machines.
type StaticDirectory struct {
	accounts map[string]StaticAccount
	order    []string
}

var _ ports.DirectoryClient = (*StaticDirectory)(nil)

func NewStaticDirectory(accounts []StaticAccount) (*StaticDirectory, error) {
	d := &StaticDirectory{accounts: make(map[string]StaticAccount, len(accounts))}
	for _, a := range accounts {
		key := strings.ToLower(strings.TrimSpace(a.Account))
		if key == "" {
			return nil, errors.New("static directory: account name is required")
		}
		if _, dup := d.accounts[key]; dup {
			return nil, fmt.Errorf("static directory: duplicate account %q", a.Account)
		}
		d.accounts[key] = a
		d.order = append(d.order, key)
	}
	return d, nil
}

// LoadStaticDirectory reads accounts from a YAML file.
func LoadStaticDirectory(path string) (*StaticDirectory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static directory: %w", err)
	}
	var f staticFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse static directory %s: %w", path, err)
	}
	return NewStaticDirectory(f.Users)
}

// Authenticate accepts DOMAIN\user, user@domain or a bare account name.
func (d *StaticDirectory) Authenticate(_ context.Context, identity, secret string) (bool, error) {
	if secret == "" {
		return false, nil
	}
	a, ok := d.accounts[strings.ToLower(domain.NormalizeIdentity(identity))]
	if !ok || a.Disabled {
		return false, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("account %q: %w", a.Account, err)
	}
	return true, nil
}

// FindUsers returns every account. The filter is ignored.
func (d *StaticDirectory) FindUsers(_ context.Context, _ string) ([]domain.DirectoryEntry, error) {
	entries := make([]domain.DirectoryEntry, 0, len(d.order))
	for _, key := range d.order {
		a := d.accounts[key]
		entries = append(entries, domain.DirectoryEntry{
			AccountName: a.Account,
			DisplayName: a.DisplayName,
			Email:       a.Email,
			Department:  a.Department,
			Disabled:    a.Disabled,
		})
	}
	return entries, nil
}

// HashPassword returns the bcrypt hash stored in the directory file.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
