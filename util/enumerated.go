package util

import (
	"fmt"
)

// EnumSet is an append-only bidirectional mapping between string values and
// dense integer indices. Indices are issued in insertion order and are never
// reassigned.
type EnumSet struct {
	Enum   map[string]int
	Index  []string
	Frozen bool
}

func (e *EnumSet) RebuildIndex() {
	e.Index = make([]string, len(e.Enum))
	for k, v := range e.Enum {
		e.Index[v] = k
	}
}

func (e *EnumSet) Add(value string) (int, bool) {
	enum, exists := e.Enum[value]
	if exists {
		return enum, false
	}
	if e.Frozen {
		panic("Cannot add value to frozen enum set: " + value)
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	enum, exists := e.Enum[value]
	return enum, exists
}

func (e *EnumSet) ValueOf(index int) string {
	if index < 0 {
		panic("Negative index requested")
	}
	if len(e.Index) != len(e.Enum) {
		e.RebuildIndex()
	}
	if len(e.Index) <= index {
		panic("Unknown index requested: " + fmt.Sprintf("%v of %v", index, len(e.Index)))
	}
	return e.Index[index]
}

func (e *EnumSet) Len() int {
	return len(e.Index)
}

// Values returns a copy of the values in index order.
func (e *EnumSet) Values() []string {
	retval := make([]string, len(e.Index))
	copy(retval, e.Index)
	return retval
}

func NewEnumSet(capacity int) *EnumSet {
	return &EnumSet{
		Enum:  make(map[string]int, capacity),
		Index: make([]string, 0, capacity),
	}
}

// EnumSetOf rebuilds an enum set from values in index order.
func EnumSetOf(values []string) *EnumSet {
	e := NewEnumSet(len(values))
	for _, v := range values {
		e.Add(v)
	}
	return e
}
