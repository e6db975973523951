package impls

// PortAllocator reserves host ports for instances.
type PortAllocator interface {
	// Allocate reserves the first free port in the configured range.
	Allocate() (int, error)

	// Release frees a previously allocated port.
	Release(port int)
}
