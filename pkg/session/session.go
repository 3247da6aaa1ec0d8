package session

import (
	"crypto/rand"
	"net/http"

	"github.com/gorilla/sessions"
)

const flashKey = "_flash"

type Store struct {
	name  string
	store sessions.Store
}

func NewCookieStore(name string, keypairs ...[]byte) *Store {
	store := sessions.NewCookieStore(keypairs...)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	return &Store{name: name, store: store}
}

// NewEphemeralCookieStore signs cookies with a random key, so sessions do not
// survive a restart of the process.
func NewEphemeralCookieStore(name string) (*Store, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	return NewCookieStore(name, key), nil
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

// AddFlash stores a message shown once by the next page.
func (s *Store) AddFlash(r *http.Request, w http.ResponseWriter, message string) error {
	sess, err := s.Get(r)
	if err != nil {
		// An invalid cookie is replaced.
		sess, err = s.New(r)
		if err != nil {
			return err
		}
	}

	sess.AddFlash(message, flashKey)
	return s.Save(r, w, sess)
}

// PopFlashes returns and clears the stored messages.
func (s *Store) PopFlashes(r *http.Request, w http.ResponseWriter) []string {
	sess, err := s.Get(r)
	if err != nil {
		return nil
	}

	flashes := sess.Flashes(flashKey)
	if len(flashes) == 0 {
		return nil
	}

	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if m, ok := f.(string); ok {
			messages = append(messages, m)
		}
	}

	_ = s.Save(r, w, sess)
	return messages
}
