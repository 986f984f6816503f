package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dropDatabas3/socialgate/internal/cache"
)

// ErrNotFound indica que la sesión no existe (o expiró).
var ErrNotFound = errors.New("session: not found")

// Store es la interfaz de persistencia de sesiones.
// Implementaciones: cache en memoria (demo/tests) o Redis (producción).
// Ninguna implementación provee locking entre requests concurrentes.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// cacheStore respalda sesiones en un cache.Cache (JSON por key).
type cacheStore struct {
	c   cache.Cache
	ttl time.Duration
}

// NewStore crea un Store respaldado por el cache dado.
func NewStore(c cache.Cache, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &cacheStore{c: c, ttl: ttl}
}

func (s *cacheStore) Get(_ context.Context, id string) (*Session, error) {
	b, ok := s.c.Get(key(id))
	if !ok {
		return nil, ErrNotFound
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		// Entrada corrupta: tratarla como inexistente.
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *cacheStore) Save(_ context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.c.Set(key(sess.ID), b, s.ttl)
	return nil
}

func (s *cacheStore) Delete(_ context.Context, id string) error {
	s.c.Delete(key(id))
	return nil
}

func key(id string) string { return "sess:" + id }
