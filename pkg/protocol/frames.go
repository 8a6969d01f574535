package protocol

import (
	"errors"
	"fmt"

	"github.com/rendertree-dev/rendertree/pkg/rendertree"
)

// Snapshot header.
const (
	// Magic identifies a snapshot stream.
	Magic = "RTF"

	// Version is the current snapshot format version.
	Version byte = 1
)

// Header errors.
var (
	ErrBadMagic           = errors.New("protocol: bad snapshot magic")
	ErrUnsupportedVersion = errors.New("protocol: unsupported snapshot version")
)

// WireFrame is the serializable projection of a frame. Callbacks, opaque
// keys, and arbitrary payloads do not survive serialization; they are reduced
// to display strings, and the frame kind itself marks capture presence.
type WireFrame struct {
	Seq        int
	Kind       rendertree.FrameKind
	SubtreeLen int

	// Name is the element tag or the component type's display name.
	Name string

	// HasKey distinguishes an absent key from a key whose display form is
	// empty.
	HasKey bool
	Key    string

	// Text holds text and markup content.
	Text string

	// Attribute payload. Value is the display form for every value kind
	// except Bool, which travels in Flag.
	AttrName  string
	ValueKind rendertree.AttrValueKind
	Flag      bool
	Value     string
	Updates   string

	// Parent is the owning component's store index for component reference
	// captures.
	Parent int
}

// FrameToWire projects a single frame onto its wire form.
func FrameToWire(f *rendertree.Frame) WireFrame {
	w := WireFrame{
		Seq:        f.Seq,
		Kind:       f.Kind,
		SubtreeLen: f.SubtreeLen,
	}
	switch f.Kind {
	case rendertree.KindElement:
		w.Name = f.ElementName
		w.HasKey, w.Key = keyDisplay(f.Key)
	case rendertree.KindComponent:
		if f.ComponentType != nil {
			w.Name = f.ComponentType.String()
		}
		w.HasKey, w.Key = keyDisplay(f.Key)
	case rendertree.KindText, rendertree.KindMarkup:
		w.Text = f.Text
	case rendertree.KindAttribute:
		w.AttrName = f.AttrName
		w.ValueKind = f.AttrValue.Kind
		if f.AttrValue.Kind == rendertree.AttrBool {
			w.Flag = f.AttrValue.Flag
		} else {
			w.Value = f.AttrValue.String()
		}
		w.Updates = f.UpdatesAttrName
	case rendertree.KindComponentRefCapture:
		w.Parent = f.CaptureParent
	}
	return w
}

func keyDisplay(key any) (bool, string) {
	if key == nil {
		return false, ""
	}
	return true, fmt.Sprintf("%v", key)
}

// FramesToWire projects a frame range onto its wire form.
func FramesToWire(r rendertree.FrameRange) []WireFrame {
	out := make([]WireFrame, r.Len())
	for i := 0; i < r.Len(); i++ {
		out[i] = FrameToWire(r.At(i))
	}
	return out
}

// EncodeFrames writes a frame count followed by one record per frame.
func EncodeFrames(e *Encoder, frames []WireFrame) {
	e.WriteUvarint(uint64(len(frames)))
	for i := range frames {
		encodeFrame(e, &frames[i])
	}
}

func encodeFrame(e *Encoder, w *WireFrame) {
	e.WriteByte(byte(w.Kind))
	e.WriteUvarint(uint64(w.Seq))
	switch w.Kind {
	case rendertree.KindElement, rendertree.KindComponent:
		e.WriteString(w.Name)
		e.WriteUvarint(uint64(w.SubtreeLen))
		e.WriteBool(w.HasKey)
		if w.HasKey {
			e.WriteString(w.Key)
		}
	case rendertree.KindRegion:
		e.WriteUvarint(uint64(w.SubtreeLen))
	case rendertree.KindText, rendertree.KindMarkup:
		e.WriteString(w.Text)
	case rendertree.KindAttribute:
		e.WriteString(w.AttrName)
		e.WriteByte(byte(w.ValueKind))
		if w.ValueKind == rendertree.AttrBool {
			e.WriteBool(w.Flag)
		} else {
			e.WriteString(w.Value)
		}
		e.WriteString(w.Updates)
	case rendertree.KindComponentRefCapture:
		e.WriteUvarint(uint64(w.Parent))
	}
}

// DecodeFrames reads a frame count and that many records.
func DecodeFrames(d *Decoder) ([]WireFrame, error) {
	count, err := d.ReadFrameCount()
	if err != nil {
		return nil, err
	}
	frames := make([]WireFrame, count)
	for i := 0; i < count; i++ {
		if err := decodeFrame(d, &frames[i]); err != nil {
			return nil, fmt.Errorf("protocol: frame %d: %w", i, err)
		}
	}
	return frames, nil
}

func decodeFrame(d *Decoder, w *WireFrame) error {
	kind, err := d.ReadByte()
	if err != nil {
		return err
	}
	if kind > byte(rendertree.KindComponentRefCapture) {
		return fmt.Errorf("unknown frame kind 0x%02x", kind)
	}
	w.Kind = rendertree.FrameKind(kind)

	seq, err := d.ReadUvarint()
	if err != nil {
		return err
	}
	w.Seq = int(seq)

	switch w.Kind {
	case rendertree.KindElement, rendertree.KindComponent:
		if w.Name, err = d.ReadString(); err != nil {
			return err
		}
		length, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		w.SubtreeLen = int(length)
		if w.HasKey, err = d.ReadBool(); err != nil {
			return err
		}
		if w.HasKey {
			if w.Key, err = d.ReadString(); err != nil {
				return err
			}
		}
	case rendertree.KindRegion:
		length, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		w.SubtreeLen = int(length)
	case rendertree.KindText, rendertree.KindMarkup:
		if w.Text, err = d.ReadString(); err != nil {
			return err
		}
	case rendertree.KindAttribute:
		if w.AttrName, err = d.ReadString(); err != nil {
			return err
		}
		vk, err := d.ReadByte()
		if err != nil {
			return err
		}
		if vk > byte(rendertree.AttrAny) {
			return fmt.Errorf("unknown attribute value kind 0x%02x", vk)
		}
		w.ValueKind = rendertree.AttrValueKind(vk)
		if w.ValueKind == rendertree.AttrBool {
			if w.Flag, err = d.ReadBool(); err != nil {
				return err
			}
		} else {
			if w.Value, err = d.ReadString(); err != nil {
				return err
			}
		}
		if w.Updates, err = d.ReadString(); err != nil {
			return err
		}
	case rendertree.KindComponentRefCapture:
		parent, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		w.Parent = int(parent)
	}
	return nil
}

// EncodeSnapshot serializes a frame range as a complete snapshot, header
// included.
func EncodeSnapshot(r rendertree.FrameRange) []byte {
	e := NewEncoder()
	for i := 0; i < len(Magic); i++ {
		e.WriteByte(Magic[i])
	}
	e.WriteByte(Version)
	e.WriteByte(0x00) // flags, reserved
	EncodeFrames(e, FramesToWire(r))
	return e.Bytes()
}

// DecodeSnapshot parses a complete snapshot, validating the header.
func DecodeSnapshot(data []byte) ([]WireFrame, error) {
	d := NewDecoder(data)
	for i := 0; i < len(Magic); i++ {
		b, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != Magic[i] {
			return nil, ErrBadMagic
		}
	}
	version, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if _, err := d.ReadByte(); err != nil { // flags
		return nil, err
	}
	frames, err := DecodeFrames(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, fmt.Errorf("protocol: %d trailing bytes after snapshot", d.Remaining())
	}
	return frames, nil
}
