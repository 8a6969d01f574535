// Package protocol defines the binary snapshot format for exported frame
// ranges.
//
// A snapshot is a self-contained encoding of one render-tree frame buffer,
// suitable for archiving, golden tests, and offline inspection. Delegates,
// event callbacks, reference-capture callbacks, and opaque keys cannot cross
// a process boundary; they are reduced to presence markers and display
// strings, so a decoded snapshot is for inspection and diff tooling, not for
// re-rendering.
//
// Wire format: a 5-byte header (magic "RTF" + version byte + flags byte), a
// uvarint frame count, then one record per frame. Integers are
// varint-encoded; strings are length-prefixed UTF-8. Decoding is guarded by
// allocation and collection-count limits so a corrupt or malicious snapshot
// cannot exhaust memory.
package protocol
