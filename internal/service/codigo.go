package service

import (
	"strings"

	"github.com/google/uuid"
)

// generarCodigo mints a natural key for records created without one, both
// on manual creation and when an imported row carries a blank identifier.
// The prefix keeps exported files human-scannable (SUP-, CLI-, PRO-, ...).
func generarCodigo(prefijo string) string {
	return prefijo + "-" + strings.ToUpper(uuid.NewString()[:8])
}
