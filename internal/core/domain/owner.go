package domain

// OwnerID identifies the owner of a record. The zero value is the global
// (shared) scope: global ledgers are visible to every owner but belong to
// none of them. The value is an opaque identity string supplied by an
// external identity provider; nothing in this package interprets it.
type OwnerID string

// GlobalOwner is the "no owner" sentinel for shared records.
const GlobalOwner OwnerID = ""

// IsGlobal reports whether the id denotes the shared scope.
func (o OwnerID) IsGlobal() bool {
	return o == GlobalOwner
}

func (o OwnerID) String() string {
	return string(o)
}
