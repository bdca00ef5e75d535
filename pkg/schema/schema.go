// Package schema describes the shape of a dictionary: its attributes, the
// physical type of each attribute, and (for composite-key dictionaries) the
// ordered key fields encoded into each lookup key.
package schema

import "fmt"

// Underlying is the physical storage type of an attribute or key field.
// The set is closed: every type dispatch in dictstream switches over exactly
// these tags.
type Underlying uint8

const (
	UInt8 Underlying = iota
	UInt16
	UInt32
	UInt64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	String
)

// underlyingNames is indexed by the Underlying constants above.
var underlyingNames = [...]string{
	UInt8:   "UInt8",
	UInt16:  "UInt16",
	UInt32:  "UInt32",
	UInt64:  "UInt64",
	Int8:    "Int8",
	Int16:   "Int16",
	Int32:   "Int32",
	Int64:   "Int64",
	Float32: "Float32",
	Float64: "Float64",
	String:  "String",
}

// String returns the canonical name of the type tag.
func (u Underlying) String() string {
	if int(u) < len(underlyingNames) {
		return underlyingNames[u]
	}
	return fmt.Sprintf("Underlying(%d)", uint8(u))
}

// Valid reports whether u is one of the closed set of type tags.
func (u Underlying) Valid() bool {
	return int(u) < len(underlyingNames)
}

// FixedWidth returns the encoded byte width of the type, or 0 for String.
func (u Underlying) FixedWidth() int {
	switch u {
	case UInt8, Int8:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32:
		return 4
	case UInt64, Int64, Float64:
		return 8
	case String:
		return 0
	}
	return 0
}

// ParseUnderlying resolves a canonical type name ("UInt8", "String", ...)
// to its tag. Used by config and snapshot loading.
func ParseUnderlying(name string) (Underlying, error) {
	for tag, n := range underlyingNames {
		if n == name {
			return Underlying(tag), nil
		}
	}
	return 0, fmt.Errorf("unknown underlying type %q", name)
}

// Attribute describes one named, typed value carried by every dictionary
// entry. Logical is an opaque logical-type label that dictstream passes
// through to output columns unchanged; when empty it defaults to the
// underlying type's name.
type Attribute struct {
	Name       string
	Underlying Underlying
	Logical    string
}

// LogicalType returns the logical-type label, falling back to the
// underlying type name.
func (a Attribute) LogicalType() string {
	if a.Logical != "" {
		return a.Logical
	}
	return a.Underlying.String()
}

// KeySchema is the ordered list of fields encoded into one composite key
// byte-string, in encoding order.
type KeySchema []Attribute

// Structure is a dictionary's full descriptor set. Exactly one of ID or Key
// is populated: flat dictionaries are addressed by a dense numeric id, while
// composite-key dictionaries are addressed by an encoded tuple of key fields.
// Streams borrow a Structure read-only for their whole lifetime.
type Structure struct {
	ID         *Attribute
	Key        KeySchema
	Attributes []Attribute
}

// Attribute looks up an attribute descriptor by name.
func (s Structure) Attribute(name string) (Attribute, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// HasName reports whether name resolves in the id/key/attribute namespace.
func (s Structure) HasName(name string) bool {
	if s.ID != nil && s.ID.Name == name {
		return true
	}
	for _, k := range s.Key {
		if k.Name == name {
			return true
		}
	}
	_, ok := s.Attribute(name)
	return ok
}
