package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type refKind int

const (
	refNone refKind = iota
	refID
	refName
)

// Ref is a loosely typed taxonomy reference: clients send either a numeric
// id or a free-text name. On the wire it is a bare JSON number or string.
type Ref struct {
	kind refKind
	id   uint
	name string
}

func ByID(id uint) Ref {
	return Ref{kind: refID, id: id}
}

func ByName(name string) Ref {
	return Ref{kind: refName, name: name}
}

func (r Ref) IsID() bool   { return r.kind == refID }
func (r Ref) IsName() bool { return r.kind == refName }
func (r Ref) IsZero() bool { return r.kind == refNone }

func (r Ref) ID() uint     { return r.id }
func (r Ref) Name() string { return r.name }

// String renders the identifying detail for error messages.
func (r Ref) String() string {
	switch r.kind {
	case refID:
		return strconv.FormatUint(uint64(r.id), 10)
	case refName:
		return r.name
	default:
		return "<empty>"
	}
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var id uint
	if err := json.Unmarshal(data, &id); err == nil {
		*r = ByID(id)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*r = ByName(name)
		return nil
	}

	return fmt.Errorf("expected a numeric id or a name, got %s", data)
}

func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case refID:
		return json.Marshal(r.id)
	case refName:
		return json.Marshal(r.name)
	default:
		return []byte("null"), nil
	}
}
