package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo is one component field shown by the inspector.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// Kind is the kind of the field, looking through a pointer.
func (f FieldInfo) Kind() reflect.Kind {
	return f.Type.Kind()
}

// ReflectionCache remembers the inspectable fields of each component type so
// the inspector does not walk struct layouts every frame.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// Fields returns the inspectable fields of a component type. Pointer types
// resolve to their element. The embedded BaseComponent, and any other
// embedded or unexported field, is left out.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	rc.mu.RLock()
	fields, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return fields
	}

	fields = inspectableFields(t)
	rc.mu.Lock()
	rc.fields[t] = fields
	rc.mu.Unlock()
	return fields
}

func inspectableFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		info := FieldInfo{Name: sf.Name, Type: sf.Type, Index: i}
		if sf.Type.Kind() == reflect.Pointer {
			info.Type = sf.Type.Elem()
			info.IsPointer = true
		}
		fields = append(fields, info)
	}
	return fields
}

var componentFields = NewReflectionCache()
