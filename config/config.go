package config

var (
	// ArenaSize is the default size of an alloc.Arena mapping.
	ArenaSize = 1024 * 1024 * 4
	// ArenaMinClass is the smallest arena size class. Must be a power of 2 and
	// large enough to hold a free list link.
	ArenaMinClass = 16
	// PoisonOnFree fills memory with PoisonByte before it is returned to an
	// off-heap allocator. Makes use-after-free visible in tests.
	PoisonOnFree = false
	PoisonByte   = byte(0xDD)
)
