// Package hashmap provides generic maps that are safe for concurrent use
package hashmap

// Map is implemented by every map of this package
type Map[K comparable, V any] interface {
	// Size returns the amount of stored key-value pairs
	Size() int

	// Has reports whether a value is assigned to the given key
	Has(key K) bool

	// Lookup returns the value assigned to the given key and whether one was found
	Lookup(key K) (V, bool)

	// Get returns the value assigned to the given key or the type's zero value.
	// Use Has or Lookup to tell a stored zero value apart from a missing one.
	Get(key K) V

	// Set assigns a value to the given key
	Set(key K, value V)

	// Unset removes the value assigned to the given key
	Unset(key K)

	// Clear removes all key-value pairs
	Clear()

	// Snapshot returns a copy of all key-value pairs visible through Lookup
	Snapshot() map[K]V
}
