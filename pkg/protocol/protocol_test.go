package protocol

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rendertree-dev/rendertree/pkg/rendertree"
)

type snapComponent struct{}

func (snapComponent) Render(b *rendertree.Builder) {}

func buildSampleTree(t *testing.T) rendertree.FrameRange {
	t.Helper()
	b := rendertree.New()
	b.OpenElement(0, "div")
	b.SetKey("row-1")
	b.AddAttribute(1, "class", rendertree.StringValue("container"))
	b.AddAttribute(2, "hidden", rendertree.BoolValue(true))
	b.AddAttribute(3, "onclick", rendertree.DelegateValue(func() {}))
	b.SetUpdatesAttributeName("value")
	b.AddText(4, "hello")
	b.AddMarkup(5, "<hr>")
	b.OpenRegion(6)
	b.OpenComponent(0, rendertree.ComponentTypeOf[snapComponent]())
	b.AddComponentReferenceCapture(1, func(any) {})
	b.CloseComponent()
	b.CloseRegion()
	b.AddElementReferenceCapture(7, func(rendertree.ElementRef) {})
	b.CloseElement()
	return b.Frames()
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := buildSampleTree(t)

	data := EncodeSnapshot(r)
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	want := FramesToWire(r)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotRoundTripEmpty(t *testing.T) {
	b := rendertree.New()
	data := EncodeSnapshot(b.Frames())

	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("decoded %d frames, want 0", len(got))
	}
}

func TestFrameToWireReducesPayloads(t *testing.T) {
	r := buildSampleTree(t)
	wire := FramesToWire(r)

	root := wire[0]
	if root.Kind != rendertree.KindElement || root.Name != "div" {
		t.Fatalf("frame 0 = %+v, want div element", root)
	}
	if !root.HasKey || root.Key != "row-1" {
		t.Errorf("root key = (%v, %q), want (true, row-1)", root.HasKey, root.Key)
	}
	if root.SubtreeLen != r.At(0).SubtreeLen {
		t.Errorf("root SubtreeLen = %d, want %d", root.SubtreeLen, r.At(0).SubtreeLen)
	}

	var delegate *WireFrame
	for i := range wire {
		if wire[i].Kind == rendertree.KindAttribute && wire[i].AttrName == "onclick" {
			delegate = &wire[i]
		}
	}
	if delegate == nil {
		t.Fatal("onclick attribute frame not found")
	}
	if delegate.ValueKind != rendertree.AttrDelegate {
		t.Errorf("onclick ValueKind = %s, want Delegate", delegate.ValueKind)
	}
	if delegate.Value != "<delegate>" {
		t.Errorf("onclick Value = %q, want display marker", delegate.Value)
	}
	if delegate.Updates != "value" {
		t.Errorf("onclick Updates = %q, want %q", delegate.Updates, "value")
	}
}

func TestDecodeSnapshotHeaderErrors(t *testing.T) {
	valid := EncodeSnapshot(buildSampleTree(t))

	badMagic := append([]byte(nil), valid...)
	badMagic[0] = 'X'

	badVersion := append([]byte(nil), valid...)
	badVersion[3] = 99

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, io.ErrUnexpectedEOF},
		{"bad magic", badMagic, ErrBadMagic},
		{"bad version", badVersion, ErrUnsupportedVersion},
		{"header only", valid[:5], io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeSnapshot() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeSnapshotTruncated(t *testing.T) {
	valid := EncodeSnapshot(buildSampleTree(t))

	// Every strict prefix must fail cleanly rather than panic or succeed.
	for n := 5; n < len(valid); n++ {
		if _, err := DecodeSnapshot(valid[:n]); err == nil {
			t.Errorf("DecodeSnapshot(valid[:%d]) succeeded, want error", n)
		}
	}
}

func TestDecodeSnapshotTrailingBytes(t *testing.T) {
	data := append(EncodeSnapshot(buildSampleTree(t)), 0xFF)
	if _, err := DecodeSnapshot(data); err == nil {
		t.Error("DecodeSnapshot() with trailing bytes succeeded, want error")
	}
}

func TestDecodeFramesRejectsHugeCount(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxFrameCount + 1)

	_, err := DecodeFrames(NewDecoder(e.Bytes()))
	if !errors.Is(err, ErrTooManyFrames) {
		t.Errorf("DecodeFrames() error = %v, want %v", err, ErrTooManyFrames)
	}
}

func TestDecodeFramesRejectsCountBeyondBuffer(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1000)
	e.WriteByte(byte(rendertree.KindText))

	_, err := DecodeFrames(NewDecoder(e.Bytes()))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("DecodeFrames() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestDecodeFrameUnknownKind(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteByte(0x7F)
	e.WriteUvarint(0)

	if _, err := DecodeFrames(NewDecoder(e.Bytes())); err == nil {
		t.Error("DecodeFrames() with unknown kind succeeded, want error")
	}
}

func TestDecoderStringLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxStringLen + 1)
	// The length prefix alone must trip the limit, before any allocation.
	_, err := NewDecoder(e.Bytes()).ReadString()
	if !errors.Is(err, ErrStringTooLarge) {
		t.Errorf("ReadString() error = %v, want %v", err, ErrStringTooLarge)
	}
}

func TestDecoderVarintOverflow(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, err := NewDecoder(data).ReadUvarint()
	if !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("ReadUvarint() error = %v, want %v", err, ErrVarintOverflow)
	}
}

func TestEncoderUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1<<32 - 1, 1<<64 - 1}

	e := NewEncoder()
	for _, v := range values {
		e.WriteUvarint(v)
	}

	d := NewDecoder(e.Bytes())
	for _, want := range values {
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadUvarint() = %d, want %d", got, want)
		}
	}
	if !d.EOF() {
		t.Errorf("decoder has %d bytes remaining, want 0", d.Remaining())
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("first")
	e.Reset()
	e.WriteString("x")

	d := NewDecoder(e.Bytes())
	got, err := d.ReadString()
	if err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}
	if got != "x" {
		t.Errorf("ReadString() = %q, want %q", got, "x")
	}
}
