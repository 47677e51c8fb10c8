package partition

import "github.com/sensorflash/nvsgen/pkg/codec"

// Data holds the key-value content of a partition: namespaces in
// insertion order, each with its keys in insertion order. Iteration
// order fixes the byte layout of the encoded image, so preserving it
// is part of the public contract.
type Data struct {
	order []string
	sets  map[string]*keySet
}

type keySet struct {
	order  []string
	values map[string]codec.Value
}

// NewData returns an empty Data.
func NewData() *Data {
	return &Data{sets: make(map[string]*keySet)}
}

// AddNamespace registers ns without storing any keys. Namespaces with
// no keys are skipped by the encoder.
func (d *Data) AddNamespace(ns string) {
	d.namespace(ns)
}

func (d *Data) namespace(ns string) *keySet {
	if s, ok := d.sets[ns]; ok {
		return s
	}
	s := &keySet{values: make(map[string]codec.Value)}
	d.order = append(d.order, ns)
	d.sets[ns] = s
	return s
}

// Set stores v under ns/key. Updating an existing key keeps its
// original position.
func (d *Data) Set(ns, key string, v codec.Value) {
	s := d.namespace(ns)
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = v
}

// Get returns the value stored under ns/key.
func (d *Data) Get(ns, key string) (codec.Value, bool) {
	s, ok := d.sets[ns]
	if !ok {
		return codec.Value{}, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Namespaces returns the namespace names in insertion order.
func (d *Data) Namespaces() []string {
	return append([]string(nil), d.order...)
}

// Keys returns the keys of ns in insertion order.
func (d *Data) Keys(ns string) []string {
	s, ok := d.sets[ns]
	if !ok {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Len returns the total number of key/value pairs.
func (d *Data) Len() int {
	n := 0
	for _, s := range d.sets {
		n += len(s.order)
	}
	return n
}

// Equal reports whether d and o hold the same namespaces, keys and
// values in the same order.
func (d *Data) Equal(o *Data) bool {
	if len(d.order) != len(o.order) {
		return false
	}
	for i, ns := range d.order {
		if o.order[i] != ns {
			return false
		}
		a, b := d.sets[ns], o.sets[ns]
		if len(a.order) != len(b.order) {
			return false
		}
		for j, key := range a.order {
			if b.order[j] != key {
				return false
			}
			if !a.values[key].Equal(b.values[key]) {
				return false
			}
		}
	}
	return true
}
