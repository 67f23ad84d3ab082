// Package frame implements the process-wide coordinate-frame registry:
// idempotent registration, lookup, and listing, guarded by a
// reader/writer lock so concurrent reads never block each other (§4.D, §5).
package frame

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"sync"
)

// Descriptor describes a coordinate frame.
type Descriptor struct {
	Name           string
	Datum          string
	Description    string
	RightHanded    bool
	BaseUnitMeters float64
}

// digest returns a deterministic fingerprint of d's fields, used to detect
// conflicting re-registration of the same frame id.
func (d Descriptor) digest() [32]byte {
	h := sha256.New()
	h.Write([]byte(d.Name))
	h.Write([]byte{0})
	h.Write([]byte(d.Datum))
	h.Write([]byte{0})
	h.Write([]byte(d.Description))
	h.Write([]byte{0})
	if d.RightHanded {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(int64(d.BaseUnitMeters*1e9)))
	h.Write(buf[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// FrameConflictError indicates a re-registration attempt for an id already
// bound to a different descriptor.
type FrameConflictError struct {
	ID uint8
}

func (e *FrameConflictError) Error() string {
	return fmt.Sprintf("frame conflict: id %d is already registered with a different descriptor", e.ID)
}

// InvalidFrameIDError indicates a lookup for an id with no registered frame.
type InvalidFrameIDError struct {
	ID uint8
}

func (e *InvalidFrameIDError) Error() string {
	return fmt.Sprintf("invalid frame id: %d is not registered", e.ID)
}

// Registry is a process-wide Frame ID -> Descriptor map. The zero value is
// not usable; construct with NewRegistry (or use Default).
type Registry struct {
	mu      sync.RWMutex
	entries map[uint8]Descriptor
}

// ECEF is the pre-registered frame 0: WGS-84 ECEF, right-handed, 1 meter
// base unit.
var ECEF = Descriptor{
	Name:           "ECEF",
	Datum:          "WGS-84",
	Description:    "Earth-Centered, Earth-Fixed",
	RightHanded:    true,
	BaseUnitMeters: 1.0,
}

// NewRegistry returns a Registry with frame 0 pre-registered as ECEF.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[uint8]Descriptor)}
	r.entries[0] = ECEF
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide singleton Registry, initialized with
// frame 0 = ECEF at package load.
func Default() *Registry { return defaultRegistry }

// Register inserts desc at id. If id is unbound, it is inserted. If id is
// already bound to a descriptor with an identical digest, Register
// succeeds without changing anything (idempotent). Otherwise it returns
// FrameConflictError.
func (r *Registry) Register(id uint8, desc Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[id]
	if !ok {
		r.entries[id] = desc
		return nil
	}
	if existing.digest() == desc.digest() {
		return nil
	}
	return &FrameConflictError{ID: id}
}

// Get returns the descriptor registered at id, or InvalidFrameIDError.
func (r *Registry) Get(id uint8) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.entries[id]
	if !ok {
		return Descriptor{}, &InvalidFrameIDError{ID: id}
	}
	return d, nil
}

// Has reports whether id is registered. It satisfies ids.FrameChecker.
func (r *Registry) Has(id uint8) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// List returns a consistent snapshot of all registered (id, descriptor)
// pairs, sorted by id.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for id, d := range r.entries {
		out = append(out, Entry{ID: id, Descriptor: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Entry pairs a Frame ID with its Descriptor, returned by List.
type Entry struct {
	ID         uint8
	Descriptor Descriptor
}
