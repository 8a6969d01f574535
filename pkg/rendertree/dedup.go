package rendertree

import "strings"

// foldAttrName normalizes an attribute name for case-insensitive duplicate
// tracking.
func foldAttrName(name string) string {
	return strings.ToLower(name)
}

// removeDuplicateAttributes resolves repeated attribute names within the run
// starting at first (the index right after the scope's opening frame) so that
// the last attribute-setting call for a name wins — including when an earlier
// call was silent, i.e. omitted because its value was false or null on an
// element. Entry point is resolvePendingAttributes; the pass only ever runs
// after AddMultipleAttributes armed the dirty flag.
func (b *Builder) removeDuplicateAttributes(first int) {
	// The run is the contiguous attribute frames [first, last]; it ends at
	// the first non-attribute frame or the end of the store.
	last := b.store.Len() - 1
	for i := first; i <= last; i++ {
		if b.store.At(i).Kind != KindAttribute {
			last = i - 1
			break
		}
	}

	if b.seenAttrNames == nil {
		b.seenAttrNames = make(map[string]int)
	}

	// Walk the run backward through call order. The first sighting of a name
	// is the winning call; earlier frames with the same name are stale. The
	// map may already hold silent placeholders recorded at add time.
	for i := last; i >= first; i-- {
		frame := b.store.At(i)
		name := foldAttrName(frame.AttrName)
		seen, ok := b.seenAttrNames[name]
		switch {
		case !ok:
			b.seenAttrNames[name] = i
		case seen < i:
			// The recorded index is a silent placeholder from an earlier
			// omitted call; this frame overrides it. Keep tracking in case
			// the name appeared three or more times.
			b.seenAttrNames[name] = i
		case seen > i:
			// A later call overrode this frame. Blank it; the compaction
			// below wipes blanked frames out.
			*frame = Frame{}
		}
		// seen == i happens when this frame's own append followed a silent
		// placeholder at the same index; nothing to do.
	}

	// Compact: copy survivors — and any non-attribute frames that follow the
	// run — leftward in order, then drop the freed tail.
	offset := first
	total := b.store.Len()
	for i := first; i < total; i++ {
		frame := b.store.At(i)
		if frame.Kind == KindNone {
			continue
		}
		if offset != i {
			*b.store.At(offset) = *frame
		}
		offset++
	}
	b.store.TruncateLast(total - offset)

	clear(b.seenAttrNames)
	b.bulkDirty = false
}
