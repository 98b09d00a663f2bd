// Package user describes the actor making a search request.
package user

// Identity references the requesting actor.
// It carries no search state; it is the lookup key for preference services.
type Identity struct {
	ID    int64
	Name  string
	Named bool // registered, non-temporary account
}

// Anonymous returns the identity of a logged-out visitor.
func Anonymous() Identity { return Identity{} }

// IsNamed reports whether the identity is a named account that can hold preferences.
func (u Identity) IsNamed() bool { return u.Named && u.ID > 0 }
