package state

// overlayValue is a buffered write: either a pending value or a tombstone.
type overlayValue struct {
	value   []byte
	deleted bool
}

// journalEntry is a revertible overlay change.
type journalEntry interface {
	revert(o *OverlayStore)
}

// journal tracks overlay modifications for snapshot/revert.
type journal struct {
	entries   []journalEntry
	snapshots map[int]int // snapshot ID -> entry index
	nextID    int
}

func newJournal() *journal {
	return &journal{
		snapshots: make(map[int]int),
	}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

func (j *journal) snapshot() int {
	id := j.nextID
	j.nextID++
	j.snapshots[id] = len(j.entries)
	return id
}

func (j *journal) revertToSnapshot(id int, o *OverlayStore) {
	idx, ok := j.snapshots[id]
	if !ok {
		return
	}
	// Revert in reverse order.
	for i := len(j.entries) - 1; i >= idx; i-- {
		j.entries[i].revert(o)
	}
	j.entries = j.entries[:idx]

	// Remove invalidated snapshots.
	for sid := range j.snapshots {
		if sid >= id {
			delete(j.snapshots, sid)
		}
	}
}

// writeChange journals the previous buffered state of one key.
type writeChange struct {
	key         string
	prev        overlayValue
	prevPresent bool
}

func (ch writeChange) revert(o *OverlayStore) {
	if ch.prevPresent {
		o.writes[ch.key] = ch.prev
	} else {
		delete(o.writes, ch.key)
	}
}

// OverlayStore buffers writes on top of a parent Store. Reads fall through
// to the parent for keys without a buffered write. Snapshot/RevertToSnapshot
// delimit revertible scopes within the overlay; Commit flushes the buffered
// writes into the parent. Not safe for concurrent use.
type OverlayStore struct {
	parent  Store
	writes  map[string]overlayValue
	journal *journal
}

// NewOverlayStore creates an empty overlay over parent.
func NewOverlayStore(parent Store) *OverlayStore {
	return &OverlayStore{
		parent:  parent,
		writes:  make(map[string]overlayValue),
		journal: newJournal(),
	}
}

// Get returns the value under key, consulting buffered writes first.
func (o *OverlayStore) Get(key []byte) []byte {
	if ov, ok := o.writes[string(key)]; ok {
		if ov.deleted {
			return nil
		}
		return copyBytes(ov.value)
	}
	return o.parent.Get(key)
}

// Set buffers a write of value under key.
func (o *OverlayStore) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	k := string(key)
	prev, ok := o.writes[k]
	o.journal.append(writeChange{key: k, prev: prev, prevPresent: ok})
	o.writes[k] = overlayValue{value: copyBytes(value)}
}

// Delete buffers a tombstone for key.
func (o *OverlayStore) Delete(key []byte) {
	k := string(key)
	prev, ok := o.writes[k]
	o.journal.append(writeChange{key: k, prev: prev, prevPresent: ok})
	o.writes[k] = overlayValue{deleted: true}
}

// Snapshot marks the current overlay state and returns an identifier for
// RevertToSnapshot.
func (o *OverlayStore) Snapshot() int {
	return o.journal.snapshot()
}

// RevertToSnapshot undoes every change made since the snapshot was taken.
// Unknown snapshot IDs are ignored.
func (o *OverlayStore) RevertToSnapshot(id int) {
	o.journal.revertToSnapshot(id, o)
}

// Commit flushes all buffered writes into the parent store and resets the
// overlay to empty.
func (o *OverlayStore) Commit() {
	for k, ov := range o.writes {
		if ov.deleted {
			o.parent.Delete([]byte(k))
		} else {
			o.parent.Set([]byte(k), ov.value)
		}
	}
	o.writes = make(map[string]overlayValue)
	o.journal = newJournal()
}

// Discard drops all buffered writes without touching the parent.
func (o *OverlayStore) Discard() {
	o.writes = make(map[string]overlayValue)
	o.journal = newJournal()
}

// Dirty returns the number of keys with buffered writes.
func (o *OverlayStore) Dirty() int {
	return len(o.writes)
}
