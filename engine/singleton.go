package engine

import "reflect"

// Resources holds the shared values systems reach through Singleton fields,
// keyed by their type.
type Resources struct {
	values map[reflect.Type]any
}

func newResources() *Resources {
	return &Resources{values: make(map[reflect.Type]any)}
}

// Provide registers value as the resource of type T, replacing any earlier one.
func Provide[T any](s *Scheduler, value *T) {
	s.resources.values[reflect.TypeFor[T]()] = value
}

// Lookup returns the resource of type T, or nil if none was provided.
func Lookup[T any](r *Resources) *T {
	v, ok := r.values[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return v.(*T)
}

// Singleton gives a system access to a resource registered with Provide.
type Singleton[T any] struct {
	resources *Resources
	value     *T
}

// Init binds the Singleton to the scheduler's resources.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(r *Resources) {
	s.resources = r
	s.value = Lookup[T](r)
}

// Get returns the resource, or nil if it has not been provided.
func (s *Singleton[T]) Get() *T {
	if s.value == nil && s.resources != nil {
		s.value = Lookup[T](s.resources)
	}
	return s.value
}

// Exists returns true if the resource has been provided.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
