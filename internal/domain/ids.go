package domain

import (
	"strings"

	"github.com/google/uuid"
)

// CanonicalID devuelve el UUID en forma canónica (minúsculas, con guiones), igual a como lo
// devuelve PostgreSQL. Un valor que no es UUID se devuelve sin espacios y sin otros cambios.
func CanonicalID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}
