package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/bookclub/internal/config"
)

// KeySearcherID is the session key holding the searcher ID.
const KeySearcherID = "searcher_id"

// Manager wraps scs.SessionManager with searcher-specific accessors.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates an in-memory session manager.
func NewManager(cfg config.Sessions) *Manager {
	sm := scs.New()
	sm.Store = memstore.New()

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}
	sm.Cookie.Name = cfg.CookieName
	if sm.Cookie.Name == "" {
		sm.Cookie.Name = "bookclub_session"
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}

// SearcherID returns the searcher bound to the session, or "" if none.
func (m *Manager) SearcherID(ctx context.Context) string {
	return m.GetString(ctx, KeySearcherID)
}

// BindSearcher stores id in the session when it differs from the current one.
func (m *Manager) BindSearcher(ctx context.Context, id string) {
	if m.SearcherID(ctx) == id {
		return
	}
	m.Put(ctx, KeySearcherID, id)
}

// GenerateSecret creates a random 32-byte secret, hex encoded.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// DecodeSecret accepts a hex secret and falls back to the raw bytes.
func DecodeSecret(secret string) []byte {
	if decoded, err := hex.DecodeString(secret); err == nil {
		return decoded
	}
	return []byte(secret)
}
