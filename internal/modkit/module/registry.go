package module

import "sync"

// process wide registry of port bundles, filled while modules are mounted
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a port bundle for a module name
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches a module's bundle and pulls T out of it
func PortsAs[T any](name string) (T, bool) {
	var zero T
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		return zero, false
	}
	return extract[T](v)
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
