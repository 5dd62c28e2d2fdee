package chain

import (
	"errors"
	"strings"

	"github.com/dyluth/primer/pkg/registry"
)

// ErrNoCaller is returned when no calling identity was supplied.
var ErrNoCaller = errors.New("no caller identity supplied")

// Caller resolves the first non-blank identity among candidates, in order.
// Callers pass the most specific source first (flag, then environment, then
// config file).
func Caller(candidates ...string) (registry.Principal, error) {
	for _, c := range candidates {
		if id := strings.TrimSpace(c); id != "" {
			return registry.Principal(id), nil
		}
	}
	return "", ErrNoCaller
}
