package usecase

import "invidx/internal/domain"

// Op names an operation guarded by the session flags.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpSave   Op = "save"
)

// Allowed reports whether op may run under flags, returning a
// *domain.StateError when it may not. Save is always allowed.
func Allowed(op Op, flags domain.SessionFlags) error {
	switch op {
	case OpCreate:
		if flags.Created {
			return domain.NewStateError(string(op), "database already created, save before creating again")
		}
	case OpUpdate:
		if flags.Created || flags.Updated {
			return domain.NewStateError(string(op), "database already updated or created in this session, save before updating again")
		}
	}
	return nil
}

// transition returns the flags after op has succeeded.
func transition(op Op, flags domain.SessionFlags) domain.SessionFlags {
	switch op {
	case OpCreate:
		flags.Created = true
	case OpUpdate:
		// An update reopens create for the rest of the session.
		flags.Updated = true
		flags.Loaded = true
		flags.Created = false
	case OpSave:
		flags = domain.SessionFlags{}
	}
	return flags
}
