package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

type Store struct {
	name  string
	store sessions.Store
}

// NewCookieStore returns a cookie-backed store. Sessions only carry
// short-lived login state such as the wallet nonce, so cookies expire
// after ten minutes and are never exposed to scripts.
func NewCookieStore(name string, keypairs ...[]byte) *Store {
	store := sessions.NewCookieStore(keypairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
	}

	return &Store{name: name, store: store}
}

func (s *Store) New(r *http.Request) (*sessions.Session, error) {
	return s.store.New(r, s.name)
}

func (s *Store) Get(r *http.Request) (*sessions.Session, error) {
	return s.store.Get(r, s.name)
}

func (s *Store) Save(r *http.Request, w http.ResponseWriter, a *sessions.Session) error {
	return s.store.Save(r, w, a)
}
