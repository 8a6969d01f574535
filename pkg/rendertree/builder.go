package rendertree

import "reflect"

// Attr is a name/value pair for AddMultipleAttributes.
type Attr struct {
	Name  string
	Value AttrValue
}

// Builder records one tree snapshot into a flat frame store. See the package
// documentation for the calling protocol.
type Builder struct {
	store      *FrameStore
	openScopes scopeStack

	// lastNonAttr gates attribute calls: an attribute run is valid only
	// immediately after an element or component frame (or other attributes
	// in the same run). hasLastNonAttr is false on a fresh or cleared
	// builder.
	lastNonAttr    FrameKind
	hasLastNonAttr bool

	// seenAttrNames maps lowercased attribute names to store indices while a
	// bulk attribute call is unresolved. Entries for omitted ("silent")
	// attributes record the index the frame would have occupied, so a later
	// duplicate is recognized as an override rather than a fresh attribute.
	seenAttrNames map[string]int

	// bulkDirty is set only by AddMultipleAttributes and cleared by the
	// duplicate-resolution pass at the next scope transition.
	bulkDirty bool
}

// New returns a builder backed by pooled frame storage.
func New() *Builder {
	return &Builder{store: NewFrameStore()}
}

// OpenElement appends an element frame and opens its scope. Every
// OpenElement must be balanced by a CloseElement.
func (b *Builder) OpenElement(seq int, name string) {
	profileStart(opOpenElement)
	// Entering a new scope finalizes the enclosing scope's pending
	// attribute cleanup.
	b.resolvePendingAttributes()
	b.openScopes.push(b.store.Len())
	b.store.Append(Frame{Seq: seq, Kind: KindElement, ElementName: name})
	b.setLastNonAttribute(KindElement)
	profileEnd(opOpenElement)
}

// CloseElement closes the innermost open scope, which must be an element,
// and writes its subtree length.
func (b *Builder) CloseElement() {
	profileStart(opCloseElement)
	b.closeScope(KindElement)
	profileEnd(opCloseElement)
}

// OpenComponent appends a component frame and opens its scope. The type must
// implement Component. Use ComponentTypeOf to produce the identity, or
// OpenComponentOf to do both in one call.
func (b *Builder) OpenComponent(seq int, componentType reflect.Type) {
	profileStart(opOpenComponent)
	if componentType == nil || !componentType.Implements(componentInterface) {
		contractViolation(CodeInvalidComponentType,
			"%v does not implement rendertree.Component", componentType)
	}
	b.resolvePendingAttributes()
	b.openScopes.push(b.store.Len())
	b.store.Append(Frame{Seq: seq, Kind: KindComponent, ComponentType: componentType})
	b.setLastNonAttribute(KindComponent)
	profileEnd(opOpenComponent)
}

// OpenComponentOf is shorthand for b.OpenComponent(seq, ComponentTypeOf[T]()).
func OpenComponentOf[T Component](b *Builder, seq int) {
	b.OpenComponent(seq, ComponentTypeOf[T]())
}

// CloseComponent closes the innermost open scope, which must be a component,
// and writes its subtree length.
func (b *Builder) CloseComponent() {
	profileStart(opCloseComponent)
	b.closeScope(KindComponent)
	profileEnd(opCloseComponent)
}

// OpenRegion appends a region frame and opens its scope. Regions isolate a
// fragment's sequence numbers from the surrounding numbering so the diff
// engine never compares across the boundary.
func (b *Builder) OpenRegion(seq int) {
	profileStart(opOpenRegion)
	b.resolvePendingAttributes()
	b.openScopes.push(b.store.Len())
	b.store.Append(Frame{Seq: seq, Kind: KindRegion})
	b.setLastNonAttribute(KindRegion)
	profileEnd(opOpenRegion)
}

// CloseRegion closes the innermost open scope, which must be a region, and
// writes its subtree length.
func (b *Builder) CloseRegion() {
	profileStart(opCloseRegion)
	b.closeScope(KindRegion)
	profileEnd(opCloseRegion)
}

func (b *Builder) closeScope(kind FrameKind) {
	b.resolvePendingAttributes()
	idx := b.openScopes.pop()
	frame := b.store.At(idx)
	if frame.Kind != kind {
		contractViolation(CodeMismatchedClose,
			"Close%s does not match the open %s frame at index %d", kind, frame.Kind, idx)
	}
	frame.SubtreeLen = b.store.Len() - idx
}

// AddText appends a text frame.
func (b *Builder) AddText(seq int, text string) {
	profileStart(opAddText)
	b.store.Append(Frame{Seq: seq, Kind: KindText, Text: text})
	b.setLastNonAttribute(KindText)
	profileEnd(opAddText)
}

// AddMarkup appends a raw markup frame. The content is emitted without
// escaping; never pass user-provided input.
func (b *Builder) AddMarkup(seq int, markup string) {
	profileStart(opAddMarkup)
	b.store.Append(Frame{Seq: seq, Kind: KindMarkup, Text: markup})
	b.setLastNonAttribute(KindMarkup)
	profileEnd(opAddMarkup)
}

// AddContent invokes the fragment inside an implicit region so its sequence
// numbers cannot collide with the surrounding numbering. A nil fragment
// appends nothing.
func (b *Builder) AddContent(seq int, fragment Fragment) {
	if fragment == nil {
		return
	}
	b.OpenRegion(seq)
	fragment(b)
	b.CloseRegion()
}

// AddContentOf evaluates the parameterized fragment with value and appends
// the result inside an implicit region.
func AddContentOf[T any](b *Builder, seq int, fragment FragmentOf[T], value T) {
	if fragment == nil {
		return
	}
	b.AddContent(seq, fragment(value))
}

// AddAttribute appends an attribute for the most recently added element or
// component.
//
// On an element, a null value or boolean false omits the attribute entirely
// (its name is still tracked while bulk attributes are unresolved), and an
// event callback that does not require an explicit receiver is flattened to
// its bare delegate. On a component every value is retained verbatim, since
// component parameters are not restricted to markup-string semantics.
func (b *Builder) AddAttribute(seq int, name string, value AttrValue) {
	profileStart(opAddAttribute)
	b.assertCanAddAttribute()
	if b.lastNonAttr == KindComponent {
		// Verbatim, including nulls: the component decides what the value
		// means.
		b.appendAttribute(Frame{Seq: seq, Kind: KindAttribute, AttrName: name, AttrValue: value})
	} else {
		b.addElementAttribute(seq, name, value)
	}
	profileEnd(opAddAttribute)
}

// AddFlagAttribute appends a presence-only attribute such as "disabled".
func (b *Builder) AddFlagAttribute(seq int, name string) {
	b.AddAttribute(seq, name, BoolValue(true))
}

func (b *Builder) addElementAttribute(seq int, name string, value AttrValue) {
	switch value.Kind {
	case AttrNull:
		b.trackAttributeName(name)

	case AttrBool:
		if value.Flag {
			b.appendAttribute(Frame{Seq: seq, Kind: KindAttribute, AttrName: name, AttrValue: BoolValue(true)})
		} else {
			b.trackAttributeName(name)
		}

	case AttrString, AttrDelegate:
		// DelegateValue collapses nil to Null, so both kinds are known
		// present here.
		b.appendAttribute(Frame{Seq: seq, Kind: KindAttribute, AttrName: name, AttrValue: value})

	case AttrEvent:
		cb := value.Event
		switch {
		case cb.RequiresExplicitReceiver():
			// The wrapper must survive so the receiver does.
			b.appendAttribute(Frame{Seq: seq, Kind: KindAttribute, AttrName: name, AttrValue: value})
		case cb.HasDelegate():
			// Flatten to the bare delegate.
			b.appendAttribute(Frame{Seq: seq, Kind: KindAttribute, AttrName: name, AttrValue: DelegateValue(cb.Handler)})
		default:
			b.trackAttributeName(name)
		}

	case AttrAny:
		resolved := dispatchAny(value.Value)
		if resolved.Kind == AttrAny {
			// No closed variant matched; append the object verbatim.
			b.appendAttribute(Frame{Seq: seq, Kind: KindAttribute, AttrName: name, AttrValue: resolved})
		} else {
			b.addElementAttribute(seq, name, resolved)
		}
	}
}

// AddAttributeFrame appends a pre-built attribute frame as-is, re-stamping
// its sequence number. Element-style omission does not apply. Panics if the
// supplied frame is not of attribute kind.
func (b *Builder) AddAttributeFrame(seq int, frame Frame) {
	b.assertCanAddAttribute()
	if frame.Kind != KindAttribute {
		contractViolation(CodeNotAnAttributeFrame,
			"AddAttributeFrame was given a %s frame", frame.Kind)
	}
	frame.Seq = seq
	b.appendAttribute(frame)
}

// AddMultipleAttributes appends a sequence of name/value pairs through the
// element/component dispatch of AddAttribute and arms the lazy
// duplicate-resolution pass for the current scope: from here until the scope
// transition, repeated names (including ones whose frames were omitted)
// resolve to the last call's value.
func (b *Builder) AddMultipleAttributes(seq int, attrs []Attr) {
	profileStart(opAddMultipleAttributes)
	b.assertCanAddAttribute()
	b.bulkDirty = true
	for _, a := range attrs {
		b.AddAttribute(seq, a.Name, a.Value)
	}
	profileEnd(opAddMultipleAttributes)
}

// SetUpdatesAttributeName links the most recently appended frame, which must
// be an attribute, to another attribute whose displayed value the associated
// event handler may change.
func (b *Builder) SetUpdatesAttributeName(name string) {
	if b.store.Len() == 0 {
		contractViolation(CodeNoPrecedingAttribute,
			"SetUpdatesAttributeName requires a preceding attribute frame")
	}
	prev := b.store.At(b.store.Len() - 1)
	if prev.Kind != KindAttribute {
		contractViolation(CodeNoPrecedingAttribute,
			"SetUpdatesAttributeName follows a %s frame, not an attribute", prev.Kind)
	}
	prev.UpdatesAttrName = name
}

// SetKey attaches a reconciliation key to the innermost open element or
// component. A nil key is a no-op.
func (b *Builder) SetKey(key any) {
	if key == nil {
		return
	}
	idx, ok := b.openScopes.peek()
	if !ok {
		contractViolation(CodeKeyParent, "SetKey requires an open element or component")
	}
	frame := b.store.At(idx)
	switch frame.Kind {
	case KindElement, KindComponent:
		frame.Key = key
	default:
		contractViolation(CodeKeyParent, "cannot set a key on a %s frame", frame.Kind)
	}
}

// AddElementReferenceCapture appends a capture frame whose callback the
// rendering runtime invokes with the resolved element handle. The innermost
// open frame must be an element.
func (b *Builder) AddElementReferenceCapture(seq int, capture func(ElementRef)) {
	idx, ok := b.openScopes.peek()
	if !ok || b.store.At(idx).Kind != KindElement {
		contractViolation(CodeCaptureParent,
			"element reference capture requires the innermost open frame to be an element")
	}
	b.store.Append(Frame{Seq: seq, Kind: KindElementRefCapture, ElementCapture: capture})
	b.setLastNonAttribute(KindElementRefCapture)
}

// AddComponentReferenceCapture appends a capture frame whose callback the
// rendering runtime invokes with the resolved component instance. The frame
// records the owning component's store index so the runtime can tell which
// instance the capture belongs to. The innermost open frame must be a
// component.
func (b *Builder) AddComponentReferenceCapture(seq int, capture func(instance any)) {
	idx, ok := b.openScopes.peek()
	if !ok || b.store.At(idx).Kind != KindComponent {
		contractViolation(CodeCaptureParent,
			"component reference capture requires the innermost open frame to be a component")
	}
	b.store.Append(Frame{Seq: seq, Kind: KindComponentRefCapture, ComponentCapture: capture, CaptureParent: idx})
	b.setLastNonAttribute(KindComponentRefCapture)
}

// InsertAttributeExpensive inserts an attribute frame at an arbitrary store
// index, shifting later frames right. It exists for callers patching an
// already emitted buffer after an interactive event; element-style omission
// applies (null and boolean false insert nothing). O(n) per call.
func (b *Builder) InsertAttributeExpensive(index int, seq int, name string, value AttrValue) {
	if value.Kind == AttrAny {
		value = dispatchAny(value.Value)
	}
	if value.Kind == AttrNull || (value.Kind == AttrBool && !value.Flag) {
		return
	}
	b.store.InsertExpensive(index, Frame{Seq: seq, Kind: KindAttribute, AttrName: name, AttrValue: value})
}

// Frames exports the recorded frames as a zero-copy view for the diffing
// engine. The view is valid until the next mutating call on the builder.
func (b *Builder) Frames() FrameRange {
	return b.store.View()
}

// Clear resets the builder for reuse, keeping the pooled backing storage.
func (b *Builder) Clear() {
	b.store.Clear()
	b.openScopes.clear()
	b.hasLastNonAttr = false
	b.bulkDirty = false
	clear(b.seenAttrNames)
}

// Release returns the backing storage to the shared pool. The builder must
// not be used afterward; any further operation panics.
func (b *Builder) Release() {
	b.store.Release()
}

// ScopeDepth returns the number of currently unclosed element, component, and
// region frames.
func (b *Builder) ScopeDepth() int {
	return b.openScopes.depth()
}

func (b *Builder) setLastNonAttribute(kind FrameKind) {
	b.lastNonAttr = kind
	b.hasLastNonAttr = true
}

func (b *Builder) assertCanAddAttribute() {
	if !b.hasLastNonAttr || (b.lastNonAttr != KindElement && b.lastNonAttr != KindComponent) {
		contractViolation(CodeAttributeParent,
			"attribute frames are valid only immediately after an element or component frame")
	}
}

// appendAttribute appends a frame of attribute kind. Attribute frames do not
// change lastNonAttr: the run stays open for further attribute calls.
func (b *Builder) appendAttribute(frame Frame) {
	b.store.Append(frame)
}

// trackAttributeName records a "silent" placeholder for an attribute whose
// frame was omitted, at the index the frame would have occupied. Only needed
// while a bulk attribute call is unresolved: the placeholder lets the
// duplicate-resolution pass treat a later explicit duplicate as an override
// instead of a second frame.
func (b *Builder) trackAttributeName(name string) {
	if !b.bulkDirty {
		return
	}
	if b.seenAttrNames == nil {
		b.seenAttrNames = make(map[string]int)
	}
	b.seenAttrNames[foldAttrName(name)] = b.store.Len()
}

// resolvePendingAttributes runs the duplicate-resolution pass over the
// current scope's attribute run if a bulk attribute call left it dirty.
func (b *Builder) resolvePendingAttributes() {
	if !b.bulkDirty {
		return
	}
	// The dirty flag can only be set with an element or component open, so
	// the stack is never empty here.
	idx, ok := b.openScopes.peek()
	if !ok {
		contractViolation(CodeScopeUnderflow, "pending bulk attributes with no open scope")
	}
	b.removeDuplicateAttributes(idx + 1)
}
