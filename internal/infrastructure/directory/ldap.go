// Package directory implements ports.DirectoryClient against Active
// Directory over LDAP, plus a file-backed directory for development.
package directory

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	searchPageSize = 500

	// userAccountControl ACCOUNTDISABLE flag.
	uacAccountDisable = 0x2
)

var userAttributes = []string{"sAMAccountName", "displayName", "mail", "department", "userAccountControl"}

// LDAPConfig configures LDAPClient.
type LDAPConfig struct {
	URL                string
	BaseDN             string
	BindUser           string
	BindPassword       string
	UPNSuffix          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// LDAPClient opens one connection per call and closes it before returning.
type LDAPClient struct {
	cfg LDAPConfig
	log zerolog.Logger
}

var _ ports.DirectoryClient = (*LDAPClient)(nil)

func NewLDAPClient(cfg LDAPConfig, log zerolog.Logger) *LDAPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &LDAPClient{cfg: cfg, log: log}
}

func (c *LDAPClient) dial(ctx context.Context) (*ldap.Conn, func(), error) {
	conn, err := ldap.DialURL(c.cfg.URL,
		ldap.DialWithDialer(&net.Dialer{Timeout: c.cfg.Timeout}),
		ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: c.cfg.InsecureSkipVerify}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", c.cfg.URL, err)
	}
	conn.SetTimeout(c.cfg.Timeout)

	// Closing the connection unblocks any pending operation when ctx ends.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	release := func() {
		stop()
		_ = conn.Close()
	}
	return conn, release, nil
}

// Authenticate binds as the user. An empty secret is rejected locally since
// LDAP treats it as an anonymous bind.
func (c *LDAPClient) Authenticate(ctx context.Context, identity, secret string) (bool, error) {
	if identity == "" || secret == "" {
		return false, nil
	}

	conn, release, err := c.dial(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	if err := conn.Bind(c.qualify(identity), secret); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return false, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, fmt.Errorf("bind: %w", ctxErr)
		}
		return false, fmt.Errorf("bind: %w", err)
	}
	return true, nil
}

// qualify appends the UPN suffix to bare account names when one is
// configured. Identities already in DOMAIN\user or user@domain form pass
// through unchanged.
func (c *LDAPClient) qualify(identity string) string {
	if c.cfg.UPNSuffix == "" || strings.ContainsAny(identity, `\@`) {
		return identity
	}
	return identity + "@" + strings.TrimPrefix(c.cfg.UPNSuffix, "@")
}

// FindUsers binds with the service account and runs a paged subtree search.
func (c *LDAPClient) FindUsers(ctx context.Context, filter string) ([]domain.DirectoryEntry, error) {
	conn, release, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := conn.Bind(c.cfg.BindUser, c.cfg.BindPassword); err != nil {
		return nil, fmt.Errorf("service bind: %w", err)
	}

	req := ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases,
		0, 0, false,
		filter,
		userAttributes,
		nil,
	)
	res, err := conn.SearchWithPaging(req, searchPageSize)
	if err != nil {
		var lerr *ldap.Error
		if errors.As(err, &lerr) && lerr.ResultCode == ldap.LDAPResultSizeLimitExceeded && res != nil {
			c.log.Warn().Int("entries", len(res.Entries)).Msg("directory search truncated by size limit")
		} else {
			return nil, fmt.Errorf("search %q: %w", filter, err)
		}
	}

	entries := make([]domain.DirectoryEntry, 0, len(res.Entries))
	for _, e := range res.Entries {
		entries = append(entries, entryFromLDAP(e))
	}
	return entries, nil
}

func entryFromLDAP(e *ldap.Entry) domain.DirectoryEntry {
	return domain.DirectoryEntry{
		AccountName: strings.TrimSpace(e.GetAttributeValue("sAMAccountName")),
		DisplayName: strings.TrimSpace(e.GetAttributeValue("displayName")),
		Email:       strings.TrimSpace(e.GetAttributeValue("mail")),
		Department:  strings.TrimSpace(e.GetAttributeValue("department")),
		Disabled:    accountDisabled(e.GetAttributeValue("userAccountControl")),
	}
}

func accountDisabled(uac string) bool {
	flags, err := strconv.ParseInt(strings.TrimSpace(uac), 10, 64)
	if err != nil {
		return false
	}
	return flags&uacAccountDisable != 0
}
