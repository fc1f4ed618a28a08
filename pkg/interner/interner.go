// Package interner implements a reference-counted string interner:
// unique strings are stored once and referenced by a dense integer id,
// with freed ids reused before new ones are allocated.
package interner

// StringID identifies an interned string. IDs are dense and may be
// reused once their reference count drops to zero.
type StringID uint32

// StringInterner stores unique strings once and hands out StringIDs.
// The zero value is not usable; construct with New.
type StringInterner struct {
	stringToID map[string]StringID
	idToString []string
	refCounts  []uint32
	freeIDs    []StringID
}

// New creates an empty StringInterner.
func New() *StringInterner {
	return &StringInterner{
		stringToID: make(map[string]StringID),
	}
}

// WithCapacity creates an empty StringInterner with room for capacity
// strings preallocated.
func WithCapacity(capacity int) *StringInterner {
	return &StringInterner{
		stringToID: make(map[string]StringID, capacity),
		idToString: make([]string, 0, capacity),
		refCounts:  make([]uint32, 0, capacity),
	}
}

// Intern returns the id for s, incrementing its reference count. A
// string seen for the first time is assigned a fresh id (reusing a
// freed slot if one is available); a previously-interned string
// returns its existing id.
func (in *StringInterner) Intern(s string) StringID {
	if id, ok := in.stringToID[s]; ok {
		in.refCounts[id]++
		return id
	}

	var id StringID
	if n := len(in.freeIDs); n > 0 {
		id = in.freeIDs[n-1]
		in.freeIDs = in.freeIDs[:n-1]
		in.idToString[id] = s
		in.refCounts[id] = 1
	} else {
		id = StringID(len(in.idToString))
		in.idToString = append(in.idToString, s)
		in.refCounts = append(in.refCounts, 1)
	}

	in.stringToID[s] = id
	return id
}

// AddRef increments the reference count of an already-interned id.
// No-op for an id that was never allocated.
func (in *StringInterner) AddRef(id StringID) {
	if int(id) < len(in.refCounts) {
		in.refCounts[id]++
	}
}

// Release decrements id's reference count. When the count reaches
// zero the string is dropped from the lookup map and its slot is
// pushed onto the free list for reuse.
func (in *StringInterner) Release(id StringID) {
	idx := int(id)
	if idx >= len(in.refCounts) || in.refCounts[idx] == 0 {
		return
	}
	in.refCounts[idx]--
	if in.refCounts[idx] == 0 {
		s := in.idToString[idx]
		delete(in.stringToID, s)
		in.freeIDs = append(in.freeIDs, id)
	}
}

// Resolve returns the string for id, or ("", false) if id is unknown
// or its reference count has dropped to zero.
func (in *StringInterner) Resolve(id StringID) (string, bool) {
	idx := int(id)
	if idx < len(in.idToString) && in.refCounts[idx] > 0 {
		return in.idToString[idx], true
	}
	return "", false
}

// ResolveUnchecked returns the string stored for id regardless of its
// current reference count. Needed during mutation paths that must read
// a string's value after its refcount has already been dropped to zero
// but before the slot has been reused by a new Intern call.
func (in *StringInterner) ResolveUnchecked(id StringID) (string, bool) {
	idx := int(id)
	if idx < len(in.idToString) {
		return in.idToString[idx], true
	}
	return "", false
}

// RefCount returns the current reference count for id, or 0 if id was
// never allocated.
func (in *StringInterner) RefCount(id StringID) uint32 {
	idx := int(id)
	if idx < len(in.refCounts) {
		return in.refCounts[idx]
	}
	return 0
}

// Len returns the number of unique strings currently interned (with a
// positive reference count).
func (in *StringInterner) Len() int {
	return len(in.stringToID)
}

// IsEmpty reports whether no strings are currently interned.
func (in *StringInterner) IsEmpty() bool {
	return len(in.stringToID) == 0
}

// Capacity returns the total number of id slots, including freed ones
// not yet reused.
func (in *StringInterner) Capacity() int {
	return len(in.idToString)
}

// Stats summarizes interner bookkeeping for diagnostics and tests.
type Stats struct {
	UniqueStrings   int
	TotalReferences uint64
	FreeSlots       int
}

// Stats returns a snapshot of the interner's current bookkeeping.
func (in *StringInterner) Stats() Stats {
	var total uint64
	for _, r := range in.refCounts {
		total += uint64(r)
	}
	return Stats{
		UniqueStrings:   in.Len(),
		TotalReferences: total,
		FreeSlots:       len(in.freeIDs),
	}
}
