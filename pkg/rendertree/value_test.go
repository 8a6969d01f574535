package rendertree

import "testing"

func TestFrameKindString(t *testing.T) {
	tests := []struct {
		kind FrameKind
		want string
	}{
		{KindNone, "None"},
		{KindElement, "Element"},
		{KindComponent, "Component"},
		{KindRegion, "Region"},
		{KindText, "Text"},
		{KindMarkup, "Markup"},
		{KindAttribute, "Attribute"},
		{KindElementRefCapture, "ElementRefCapture"},
		{KindComponentRefCapture, "ComponentRefCapture"},
		{FrameKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("FrameKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttrValueKindString(t *testing.T) {
	tests := []struct {
		kind AttrValueKind
		want string
	}{
		{AttrNull, "Null"},
		{AttrBool, "Bool"},
		{AttrString, "String"},
		{AttrDelegate, "Delegate"},
		{AttrEvent, "Event"},
		{AttrAny, "Any"},
		{AttrValueKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("AttrValueKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDispatchAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want AttrValueKind
	}{
		{"nil", nil, AttrNull},
		{"bool", true, AttrBool},
		{"string", "v", AttrString},
		{"func", func() {}, AttrDelegate},
		{"event callback", EventCallback{Handler: func() {}}, AttrEvent},
		{"other object", struct{ X int }{1}, AttrAny},
		{"int", 42, AttrAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dispatchAny(tt.in).Kind; got != tt.want {
				t.Errorf("dispatchAny(%v).Kind = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDelegateValueNilCollapsesToNull(t *testing.T) {
	if v := DelegateValue(nil); !v.IsNull() {
		t.Errorf("DelegateValue(nil).Kind = %s, want Null", v.Kind)
	}
}

func TestEventCallbackCapabilities(t *testing.T) {
	handler := func() {}
	receiver := struct{}{}

	tests := []struct {
		name         string
		cb           EventCallback
		hasDelegate  bool
		explicitRecv bool
	}{
		{"empty", EventCallback{}, false, false},
		{"handler only", EventCallback{Handler: handler}, true, false},
		{"handler and receiver", EventCallback{Handler: handler, Receiver: receiver}, true, true},
		{"receiver only", EventCallback{Receiver: receiver}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cb.HasDelegate(); got != tt.hasDelegate {
				t.Errorf("HasDelegate() = %v, want %v", got, tt.hasDelegate)
			}
			if got := tt.cb.RequiresExplicitReceiver(); got != tt.explicitRecv {
				t.Errorf("RequiresExplicitReceiver() = %v, want %v", got, tt.explicitRecv)
			}
		})
	}
}

func TestComponentTypeOf(t *testing.T) {
	typ := ComponentTypeOf[fakeCounter]()
	if !typ.Implements(componentInterface) {
		t.Errorf("%v does not implement Component", typ)
	}

	ptr := ComponentTypeOf[*fakeBanner]()
	if !ptr.Implements(componentInterface) {
		t.Errorf("%v does not implement Component", ptr)
	}
}
