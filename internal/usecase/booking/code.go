package booking

import (
	"strings"

	"github.com/google/uuid"
)

// NewConfirmationCode genera el código corto que el cliente usa para
// auto-cancelar. 8 hex chars de un uuid v4 alcanzan para este volumen; la
// unicidad real la garantiza el índice de la tabla.
func NewConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
