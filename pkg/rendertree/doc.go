// Package rendertree records the structure of a UI component tree into a
// single flat, append-only frame buffer that a diffing engine can compare
// across renders to produce minimal updates.
//
// # Core Types
//
// Frame is one record in the flat encoding: elements, components, text, raw
// markup, attributes, reference captures, and regions. FrameStore is the
// pooled growable buffer the frames live in. Builder is the recording
// protocol on top of the store.
//
// # Building a Tree
//
// Callers drive the Builder through matched open/close calls with content and
// attributes in between:
//
//	b := rendertree.New()
//	b.OpenElement(0, "div")
//	b.AddAttribute(1, "class", rendertree.StringValue("card"))
//	b.AddText(2, "Hello")
//	b.CloseElement()
//	frames := b.Frames()
//
// Sequence numbers are source-position ordinals; the diff engine uses them to
// reason about structural stability, so they should be literals tied to the
// call site rather than loop counters.
//
// # Contract Violations
//
// A Builder is owned by exactly one render pass and is not safe for
// concurrent use. Protocol misuse (unbalanced closes, attributes outside an
// element or component, use after Release) panics with *ContractError; the
// recorded content up to that point is left as-is and the builder should be
// discarded or Clear()ed.
package rendertree
