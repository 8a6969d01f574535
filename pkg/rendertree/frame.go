package rendertree

import (
	"fmt"
	"reflect"
)

// FrameKind is the frame type discriminator.
type FrameKind uint8

const (
	KindNone                FrameKind = iota // zero value; marks a removed frame
	KindElement                              // <div>, <button>, etc.
	KindComponent                            // nested component
	KindRegion                               // isolates a fragment's sequence numbers
	KindText                                 // plain text
	KindMarkup                               // raw markup (dangerous)
	KindAttribute                            // name/value on the preceding element or component
	KindElementRefCapture                    // callback receiving the resolved element handle
	KindComponentRefCapture                  // callback receiving the resolved component instance
)

// String returns the string representation of the FrameKind.
func (k FrameKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindRegion:
		return "Region"
	case KindText:
		return "Text"
	case KindMarkup:
		return "Markup"
	case KindAttribute:
		return "Attribute"
	case KindElementRefCapture:
		return "ElementRefCapture"
	case KindComponentRefCapture:
		return "ComponentRefCapture"
	default:
		return "Unknown"
	}
}

// Component is anything that can render content into a Builder.
type Component interface {
	Render(b *Builder)
}

var componentInterface = reflect.TypeOf((*Component)(nil)).Elem()

// ComponentTypeOf returns the type identity used by OpenComponent for a
// concrete component implementation.
func ComponentTypeOf[T Component]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ElementRef is the handle for a rendered element. The rendering runtime
// fills in the hydration ID once the element exists in the live output.
type ElementRef struct {
	HID string
}

// Fragment appends content to a builder. Fragments are invoked synchronously
// with the builder they should write into.
type Fragment func(b *Builder)

// FragmentOf produces a Fragment from an externally supplied value.
type FragmentOf[T any] func(value T) Fragment

// Frame is one record in the flat tree encoding. A single struct
// discriminated by Kind keeps the store a contiguous []Frame with no
// per-frame heap allocation; only the fields relevant to the kind are
// meaningful, and patchable fields (SubtreeLen, Key, UpdatesAttrName) are
// written in place after the initial append.
type Frame struct {
	// Seq is the source-position ordinal the diff engine uses to reason
	// about reordering across renders.
	Seq int

	Kind FrameKind

	// SubtreeLen is the number of frames spanned by a container frame,
	// including itself. It is written exactly once, when the matching close
	// call executes, and is meaningless before that.
	SubtreeLen int

	// ElementName is the tag name for KindElement.
	ElementName string

	// ComponentType identifies the component for KindComponent. It always
	// satisfies the Component interface.
	ComponentType reflect.Type

	// Key is the optional reconciliation key for elements and components.
	// nil means no key is set.
	Key any

	// Text holds the content for KindText and KindMarkup.
	Text string

	// AttrName and AttrValue hold the payload for KindAttribute.
	AttrName  string
	AttrValue AttrValue

	// UpdatesAttrName links an event-handler attribute to another attribute
	// whose displayed value the handler may change.
	UpdatesAttrName string

	// ElementCapture is invoked by the rendering runtime with the resolved
	// element handle (KindElementRefCapture).
	ElementCapture func(ElementRef)

	// ComponentCapture is invoked by the rendering runtime with the resolved
	// component instance (KindComponentRefCapture). CaptureParent is the
	// store index of the owning component frame.
	ComponentCapture func(instance any)
	CaptureParent    int
}

// String returns a compact human-readable description of the frame.
func (f *Frame) String() string {
	switch f.Kind {
	case KindElement:
		return fmt.Sprintf("Element <%s> seq=%d len=%d", f.ElementName, f.Seq, f.SubtreeLen)
	case KindComponent:
		return fmt.Sprintf("Component %v seq=%d len=%d", f.ComponentType, f.Seq, f.SubtreeLen)
	case KindRegion:
		return fmt.Sprintf("Region seq=%d len=%d", f.Seq, f.SubtreeLen)
	case KindText:
		return fmt.Sprintf("Text %q seq=%d", f.Text, f.Seq)
	case KindMarkup:
		return fmt.Sprintf("Markup %q seq=%d", f.Text, f.Seq)
	case KindAttribute:
		return fmt.Sprintf("Attribute %s=%s seq=%d", f.AttrName, f.AttrValue, f.Seq)
	case KindElementRefCapture:
		return fmt.Sprintf("ElementRefCapture seq=%d", f.Seq)
	case KindComponentRefCapture:
		return fmt.Sprintf("ComponentRefCapture seq=%d parent=%d", f.Seq, f.CaptureParent)
	default:
		return f.Kind.String()
	}
}
