package reactive

import "github.com/pkg/errors"

var (
	ErrNoActiveScope      = errors.New("reactive: no active scope")
	ErrCircularDependency = errors.New("reactive: circular dependency")
	ErrEffectLoop         = errors.New("reactive: effect keeps invalidating itself")
)

// NoActiveScopeError is returned when lifecycle bookkeeping is requested from
// code that is not running inside any scope, for example a callback fired by
// a timer. Capture the scope with GetScope beforehand and re-enter it with
// Scope.Run.
type NoActiveScopeError struct {
	Op string
}

func (e *NoActiveScopeError) Error() string {
	return "reactive: " + e.Op + ": current scope is nil"
}

func (e *NoActiveScopeError) Is(target error) bool {
	return target == ErrNoActiveScope
}
