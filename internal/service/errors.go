package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/gate"
)

// ErrTaskLocked is returned when a guarded mutation hits a task whose
// computed lock is active.
var ErrTaskLocked = errors.New("task is locked")

// ErrNoNextPhase is returned when advancing a project already in the
// last phase of its enumeration.
var ErrNoNextPhase = errors.New("project is already in its final phase")

// BlockedError is a refused phase advance. It is a normal, reportable
// outcome rather than a fault: it aggregates every blocker category so
// the caller can show the complete remaining-work picture at once.
type BlockedError struct {
	Phase    domain.Phase
	Blockers []gate.Blocker
}

func (e *BlockedError) Error() string {
	msgs := make([]string, len(e.Blockers))
	for i, b := range e.Blockers {
		msgs[i] = b.Message
	}
	return fmt.Sprintf("phase %s advance blocked: %s", e.Phase, strings.Join(msgs, "; "))
}

// AsBlockedError unwraps err into a *BlockedError, or nil.
func AsBlockedError(err error) *BlockedError {
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return blocked
	}
	return nil
}
