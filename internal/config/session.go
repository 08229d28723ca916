package config

import (
	"fmt"
	"strings"
	"time"
)

type Session struct {
	Secret     string        `env:"SESSION_SECRET,required,notEmpty"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"inv_session"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Store      SessionStore  `env:"SESSION_STORE" envDefault:"POSTGRES"`
	Secure     bool          `env:"SESSION_SECURE" envDefault:"false"`
}

// SessionStore selects where server-side sessions are kept.
type SessionStore uint8

const (
	SessionStorePostgres SessionStore = iota
	SessionStoreRedis
	SessionStoreMemory
)

func (s SessionStore) String() string {
	return []string{"POSTGRES", "REDIS", "MEMORY"}[s]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *SessionStore) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "POSTGRES":
		*s = SessionStorePostgres
	case "REDIS":
		*s = SessionStoreRedis
	case "MEMORY":
		*s = SessionStoreMemory
	default:
		return fmt.Errorf("unknown session store: %s", text)
	}
	return nil
}

func (s SessionStore) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
