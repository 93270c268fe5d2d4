package symbol

import (
	"fmt"

	"github.com/gameconf/confc/internal/types"
)

// NullName is the reference name that stands for "no symbol".
const NullName = "null"

// Reference is an unresolved symbolic pointer to a symbol of a category.
type Reference struct {
	Type *Type
	Span types.Span
	Name string
}

// IsNull reports whether the reference is the literal "null".
func (r *Reference) IsNull() bool {
	return r.Name == NullName
}

func (r *Reference) String() string {
	return fmt.Sprintf("%s:%s", r.Type.Literal, r.Name)
}

// Link is a field that holds either an unresolved reference or the id it
// resolved to. A Link is resolved at most once.
type Link struct {
	ref      *Reference
	id       int32
	resolved bool
}

// Unresolved returns a link pending resolution of ref.
func Unresolved(ref *Reference) Link {
	return Link{ref: ref}
}

// Resolved returns a link holding a final id.
func Resolved(id int32) Link {
	return Link{id: id, resolved: true}
}

// Unset is the link of an absent reference; it resolves to -1.
var Unset = Resolved(-1)

// IsResolved reports whether the link holds an id.
func (l Link) IsResolved() bool {
	return l.resolved
}

// Reference returns the pending reference, or nil once resolved.
func (l Link) Reference() *Reference {
	if l.resolved {
		return nil
	}
	return l.ref
}

// ID returns the resolved id. It panics if the link is unresolved, since
// encoding an unresolved link is a programming error.
func (l Link) ID() int32 {
	if !l.resolved {
		if l.ref == nil {
			return -1
		}
		panic(fmt.Sprintf("symbol: reference %s is not resolved", l.ref))
	}
	return l.id
}
