package types

import (
	"fmt"

	"fortio.org/safecast"

	"burn/internal/source"
)

// StructField describes one declared field of a struct type.
type StructField struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

// StructMethod describes one method attached to a struct type.
type StructMethod struct {
	Name source.StringID
	Type TypeID // always a fn type
	Span source.Span
}

// StructInfo stores metadata for a nominal struct type.
type StructInfo struct {
	Name    source.StringID
	Decl    source.Span
	Fields  []StructField
	Methods []StructMethod
}

// RegisterStruct allocates a nominal struct type. Every declaration gets
// its own TypeID even when a name is declared twice; name resolution
// decides which declaration wins.
func (in *Interner) RegisterStruct(name source.StringID, decl source.Span) TypeID {
	slot := in.appendStructInfo(StructInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// SetStructFields stores the resolved fields of a struct type.
func (in *Interner) SetStructFields(id TypeID, fields []StructField) {
	if info := in.structInfo(id); info != nil {
		info.Fields = fields
	}
}

// SetStructMethods stores the resolved methods of a struct type.
func (in *Interner) SetStructMethods(id TypeID, methods []StructMethod) {
	if info := in.structInfo(id); info != nil {
		info.Methods = methods
	}
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	info := in.structInfo(id)
	return info, info != nil
}

// StructMember resolves a field or method by name. The second result is
// true for methods.
func (in *Interner) StructMember(id TypeID, name source.StringID) (TypeID, bool, bool) {
	info := in.structInfo(id)
	if info == nil {
		return NoTypeID, false, false
	}
	for _, f := range info.Fields {
		if f.Name == name {
			return f.Type, false, true
		}
	}
	for _, m := range info.Methods {
		if m.Name == name {
			return m.Type, true, true
		}
	}
	return NoTypeID, false, false
}

func (in *Interner) structInfo(id TypeID) *StructInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.structs) {
		return nil
	}
	return &in.structs[tt.Payload]
}

func (in *Interner) appendStructInfo(info StructInfo) uint32 {
	in.structs = append(in.structs, info)
	slot, err := safecast.Conv[uint32](len(in.structs) - 1)
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	return slot
}
