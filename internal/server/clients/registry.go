// Package clients holds the registry of machine-client identities. The list
// comes from static configuration, is built once at process start, and is
// read-only afterwards, so concurrent lookups need no locking.
package clients

import (
	"crypto/subtle"

	"github.com/mlevshin/authgate/internal/server/models"
)

// Registry is an immutable set of configured machine clients.
type Registry struct {
	clients []models.Client
}

// NewRegistry builds a registry from the configured client list. The slice is
// copied so later mutation of the source cannot leak into the registry.
func NewRegistry(list []models.Client) *Registry {
	cp := make([]models.Client, len(list))
	copy(cp, list)
	return &Registry{clients: cp}
}

// Lookup returns the client matching both id and secret exactly, or nil.
// Comparison is constant-time per entry so a caller cannot probe secrets
// through timing.
func (r *Registry) Lookup(id, secret string) *models.Client {
	for i := range r.clients {
		c := &r.clients[i]
		idOK := subtle.ConstantTimeCompare([]byte(c.ID), []byte(id)) == 1
		secretOK := subtle.ConstantTimeCompare([]byte(c.Secret), []byte(secret)) == 1
		if idOK && secretOK {
			out := *c
			return &out
		}
	}
	return nil
}
