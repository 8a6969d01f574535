package rendertree

import (
	"fmt"
	"reflect"
)

// AttrValueKind discriminates attribute values.
type AttrValueKind uint8

const (
	AttrNull     AttrValueKind = iota // absent / null
	AttrBool                          // boolean
	AttrString                        // markup string
	AttrDelegate                      // opaque callback
	AttrEvent                         // EventCallback wrapper
	AttrAny                           // open value, dispatched at append time
)

// String returns the string representation of the AttrValueKind.
func (k AttrValueKind) String() string {
	switch k {
	case AttrNull:
		return "Null"
	case AttrBool:
		return "Bool"
	case AttrString:
		return "String"
	case AttrDelegate:
		return "Delegate"
	case AttrEvent:
		return "Event"
	case AttrAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// AttrValue is a closed attribute value variant. Constructing the variant at
// the call site replaces runtime type probing on the common paths; AnyValue
// carries an open value that is re-dispatched to the matching variant when it
// is appended to an element.
type AttrValue struct {
	Kind AttrValueKind

	// Flag is the payload for AttrBool.
	Flag bool

	// Text is the payload for AttrString.
	Text string

	// Delegate is the payload for AttrDelegate: an opaque callback owned by
	// the event runtime.
	Delegate any

	// Event is the payload for AttrEvent.
	Event EventCallback

	// Value is the payload for AttrAny.
	Value any
}

// Null returns the absent value. On an element it causes the attribute to be
// omitted; on a component it is retained verbatim.
func Null() AttrValue { return AttrValue{Kind: AttrNull} }

// BoolValue returns a boolean attribute value.
func BoolValue(v bool) AttrValue { return AttrValue{Kind: AttrBool, Flag: v} }

// StringValue returns a string attribute value.
func StringValue(s string) AttrValue { return AttrValue{Kind: AttrString, Text: s} }

// DelegateValue wraps an opaque callback. A nil callback collapses to Null.
func DelegateValue(fn any) AttrValue {
	if fn == nil {
		return Null()
	}
	return AttrValue{Kind: AttrDelegate, Delegate: fn}
}

// EventValue wraps an event callback.
func EventValue(cb EventCallback) AttrValue { return AttrValue{Kind: AttrEvent, Event: cb} }

// AnyValue wraps an arbitrary value; the matching variant is chosen when the
// value is appended.
func AnyValue(v any) AttrValue { return AttrValue{Kind: AttrAny, Value: v} }

// IsNull reports whether the value is the absent value.
func (v AttrValue) IsNull() bool { return v.Kind == AttrNull }

// String returns a display form of the value, used by dumps and tests.
func (v AttrValue) String() string {
	switch v.Kind {
	case AttrNull:
		return "<null>"
	case AttrBool:
		return fmt.Sprintf("%t", v.Flag)
	case AttrString:
		return v.Text
	case AttrDelegate:
		return "<delegate>"
	case AttrEvent:
		return "<event callback>"
	case AttrAny:
		return fmt.Sprintf("%v", v.Value)
	default:
		return "<unknown>"
	}
}

// dispatchAny maps an open value onto the matching closed variant. Values
// that match no closed variant stay AttrAny and are appended verbatim.
func dispatchAny(v any) AttrValue {
	switch tv := v.(type) {
	case nil:
		return Null()
	case bool:
		return BoolValue(tv)
	case string:
		return StringValue(tv)
	case EventCallback:
		return EventValue(tv)
	default:
		if reflect.TypeOf(v).Kind() == reflect.Func {
			return DelegateValue(v)
		}
		return AnyValue(v)
	}
}

// EventCallback binds an event handler to the component that should be
// notified when the handler runs.
type EventCallback struct {
	// Handler is the underlying delegate invoked when the event fires.
	Handler any

	// Receiver is the component that must receive a change notification
	// after dispatch. When the handler already closes over its receiver the
	// field is nil and the callback can be flattened to the bare delegate.
	Receiver any
}

// HasDelegate reports whether the callback wraps an underlying delegate.
func (cb EventCallback) HasDelegate() bool { return cb.Handler != nil }

// RequiresExplicitReceiver reports whether the receiver must be preserved
// through the frame encoding rather than recovered from the delegate.
func (cb EventCallback) RequiresExplicitReceiver() bool { return cb.Receiver != nil }
