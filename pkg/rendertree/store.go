package rendertree

import "sync"

// initialStoreCap is the capacity of freshly pooled backing arrays. Render
// output for small components fits without growth; larger trees grow the
// usual doubling way and the bigger array is what returns to the pool.
const initialStoreCap = 64

var framePool = sync.Pool{
	New: func() any {
		buf := make([]Frame, 0, initialStoreCap)
		return &buf
	},
}

// FrameStore is a pooled, growable sequence of frames with indexed in-place
// mutation. Subtree lengths, keys, and attribute links are patched after the
// initial append, so At hands out pointers into the backing array rather than
// copies.
//
// A store is owned by a single builder; it is not safe for concurrent use.
type FrameStore struct {
	frames   []Frame
	released bool
}

// NewFrameStore returns a store backed by pooled storage.
func NewFrameStore() *FrameStore {
	buf := framePool.Get().(*[]Frame)
	return &FrameStore{frames: (*buf)[:0]}
}

// Len returns the number of frames in the store.
func (s *FrameStore) Len() int {
	return len(s.frames)
}

// Append adds a frame at the end of the store. The frame is retrievable at
// index Len()-1.
func (s *FrameStore) Append(f Frame) {
	s.checkUsable()
	s.frames = append(s.frames, f)
}

// At returns a mutable pointer to the frame at index i. The pointer is valid
// until the next call that grows or releases the store.
func (s *FrameStore) At(i int) *Frame {
	s.checkUsable()
	s.checkIndex(i)
	return &s.frames[i]
}

// InsertExpensive inserts a frame at index i, shifting all later frames one
// slot right. O(n); used only by out-of-band late patching.
func (s *FrameStore) InsertExpensive(i int, f Frame) {
	s.checkUsable()
	if i < 0 || i > len(s.frames) {
		contractViolation(CodeIndexOutOfRange, "insert index %d outside [0, %d]", i, len(s.frames))
	}
	s.frames = append(s.frames, Frame{})
	copy(s.frames[i+1:], s.frames[i:])
	s.frames[i] = f
}

// TruncateLast drops the last n frames.
func (s *FrameStore) TruncateLast(n int) {
	s.checkUsable()
	if n < 0 || n > len(s.frames) {
		contractViolation(CodeIndexOutOfRange, "cannot truncate %d of %d frames", n, len(s.frames))
	}
	s.frames = s.frames[:len(s.frames)-n]
}

// Clear resets the store to zero length, keeping the backing capacity.
func (s *FrameStore) Clear() {
	s.checkUsable()
	// Frames hold references (keys, callbacks); zero the dead range so the
	// pool does not pin them.
	clear(s.frames)
	s.frames = s.frames[:0]
}

// Release returns the backing storage to the shared pool. The store is
// unusable afterward; any further call panics.
func (s *FrameStore) Release() {
	s.checkUsable()
	clear(s.frames)
	buf := s.frames[:0]
	framePool.Put(&buf)
	s.frames = nil
	s.released = true
}

// View returns a zero-copy window over the store's contents. The view is
// valid until the next mutating call (Append, InsertExpensive, TruncateLast,
// Clear, Release) on the store.
func (s *FrameStore) View() FrameRange {
	s.checkUsable()
	return FrameRange{frames: s.frames}
}

func (s *FrameStore) checkUsable() {
	if s.released {
		contractViolation(CodeStoreReleased, "frame store used after Release")
	}
}

func (s *FrameStore) checkIndex(i int) {
	if i < 0 || i >= len(s.frames) {
		contractViolation(CodeIndexOutOfRange, "frame index %d outside [0, %d)", i, len(s.frames))
	}
}

// FrameRange is a read-only window over a store's backing array, handed to
// the diffing engine. It borrows the store's storage: any mutation of the
// source store or builder invalidates it.
type FrameRange struct {
	frames []Frame
}

// Len returns the number of frames in the range.
func (r FrameRange) Len() int {
	return len(r.frames)
}

// At returns the frame at index i. The returned pointer must be treated as
// read-only.
func (r FrameRange) At(i int) *Frame {
	return &r.frames[i]
}

// Frames returns the underlying slice for iteration. Callers must not modify
// or retain it past the next mutation of the source store.
func (r FrameRange) Frames() []Frame {
	return r.frames
}
