package authoring

import (
	"fmt"
	"reflect"
	"strings"
)

// Resolved pairs a merged settings snapshot with the provenance of the
// layers that produced it.
type Resolved[T any] struct {
	Value  T
	layers []Layer[T]
}

// Provenance details how a specific layer contributed to a resolved path.
type Provenance struct {
	Scope      Scope  `json:"scope"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Path       string `json:"path"`
	Value      any    `json:"value,omitempty"`
	Found      bool   `json:"found"`
}

// Layers returns a defensive copy of the contributing layers, strongest
// first.
func (r *Resolved[T]) Layers() []Layer[T] {
	if r == nil || len(r.layers) == 0 {
		return nil
	}
	out := make([]Layer[T], len(r.layers))
	for i := range r.layers {
		out[i] = cloneLayer(r.layers[i])
	}
	return out
}

// Explain resolves path against the merged value and reports what each
// layer contributed, strongest first. Path segments are separated by dots
// and address struct fields (by name or json tag) and map keys.
func (r *Resolved[T]) Explain(path string) (any, []Provenance, error) {
	if r == nil {
		return nil, nil, fmt.Errorf("authoring: resolved value is nil")
	}
	if path == "" {
		return nil, nil, fmt.Errorf("authoring: path must not be empty")
	}

	effective, _ := lookupPath(r.Value, path)
	if len(r.layers) == 0 {
		found := effective != nil
		return effective, []Provenance{{
			Scope: Scope{Name: "value"},
			Path:  path,
			Value: effective,
			Found: found,
		}}, nil
	}

	provenance := make([]Provenance, 0, len(r.layers))
	for _, layer := range r.layers {
		value, found := lookupPath(layer.Snapshot, path)
		provenance = append(provenance, Provenance{
			Scope:      layer.Scope.clone(),
			SnapshotID: layer.SnapshotID,
			Path:       path,
			Value:      value,
			Found:      found,
		})
	}
	return effective, provenance, nil
}

// lookupPath walks value along dot-separated segments. Struct fields match
// by exported name or json tag; maps match by key.
func lookupPath(value any, path string) (any, bool) {
	current := reflect.ValueOf(value)
	for _, segment := range strings.Split(path, ".") {
		current = indirect(current)
		if !current.IsValid() {
			return nil, false
		}
		switch current.Kind() {
		case reflect.Struct:
			field, ok := fieldByNameOrTag(current, segment)
			if !ok {
				return nil, false
			}
			current = field
		case reflect.Map:
			if current.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			entry := current.MapIndex(reflect.ValueOf(segment))
			if !entry.IsValid() {
				return nil, false
			}
			current = entry
		default:
			return nil, false
		}
	}
	current = indirect(current)
	if !current.IsValid() {
		return nil, false
	}
	if current.IsZero() {
		return current.Interface(), false
	}
	return current.Interface(), true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func fieldByNameOrTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Name == name {
			return v.Field(i), true
		}
		tag := field.Tag.Get("json")
		if tag == "" {
			continue
		}
		if comma := strings.IndexByte(tag, ','); comma >= 0 {
			tag = tag[:comma]
		}
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
