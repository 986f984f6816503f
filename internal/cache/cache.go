// Package cache provee abstracciones para caching con soporte multi-backend.
//
// Soporta:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, para producción)
//
// En socialgate el cache respalda el session.Store: una sesión serializada
// en JSON por key, con TTL de sesión.
package cache

import "time"

// Cache define las operaciones mínimas que necesita el session store.
type Cache interface {
	// Get obtiene un valor. El segundo retorno indica si la key existe.
	Get(k string) ([]byte, bool)

	// Set guarda un valor con TTL. Si ttl es 0 usa el default del backend.
	Set(k string, v []byte, ttl time.Duration)

	// Delete elimina una key.
	Delete(k string)
}
