package inspect

import (
	"fmt"
	"html"
	"strings"

	"github.com/rendertree-dev/rendertree/pkg/protocol"
	"github.com/rendertree-dev/rendertree/pkg/rendertree"
)

// Node is one entry of the reconstructed tree outline.
type Node struct {
	Frame    protocol.WireFrame
	Children []Node
}

// BuildTree reconstructs the nested tree from a flat frame slice using
// subtree lengths. Frames whose container spans are inconsistent with the
// slice bounds produce an error rather than a partial tree.
func BuildTree(frames []protocol.WireFrame) ([]Node, error) {
	var nodes []Node
	for len(frames) > 0 {
		f := frames[0]
		switch f.Kind {
		case rendertree.KindElement, rendertree.KindComponent, rendertree.KindRegion:
			span := f.SubtreeLen
			if span < 1 || span > len(frames) {
				return nil, fmt.Errorf("inspect: frame seq=%d: subtree length %d exceeds %d remaining frames", f.Seq, span, len(frames))
			}
			children, err := BuildTree(frames[1:span])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Frame: f, Children: children})
			frames = frames[span:]
		default:
			nodes = append(nodes, Node{Frame: f})
			frames = frames[1:]
		}
	}
	return nodes, nil
}

// label returns the display line for one frame.
func label(f *protocol.WireFrame) string {
	switch f.Kind {
	case rendertree.KindElement:
		s := "<" + f.Name + ">"
		if f.HasKey {
			s += fmt.Sprintf(" key=%s", f.Key)
		}
		return s
	case rendertree.KindComponent:
		s := f.Name
		if f.HasKey {
			s += fmt.Sprintf(" key=%s", f.Key)
		}
		return s
	case rendertree.KindRegion:
		return "region"
	case rendertree.KindText:
		return fmt.Sprintf("text %q", f.Text)
	case rendertree.KindMarkup:
		return fmt.Sprintf("markup %q", f.Text)
	case rendertree.KindAttribute:
		value := f.Value
		if f.ValueKind == rendertree.AttrBool {
			value = fmt.Sprintf("%t", f.Flag)
		}
		s := fmt.Sprintf("@%s=%s", f.AttrName, value)
		if f.Updates != "" {
			s += fmt.Sprintf(" updates=%s", f.Updates)
		}
		return s
	case rendertree.KindElementRefCapture:
		return "element ref capture"
	case rendertree.KindComponentRefCapture:
		return fmt.Sprintf("component ref capture parent=%d", f.Parent)
	default:
		return f.Kind.String()
	}
}

// RenderText renders the tree as an indented plain-text outline.
func RenderText(nodes []Node) string {
	var sb strings.Builder
	renderTextNodes(&sb, nodes, 0)
	return sb.String()
}

func renderTextNodes(sb *strings.Builder, nodes []Node, depth int) {
	for i := range nodes {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(label(&nodes[i].Frame))
		sb.WriteString(fmt.Sprintf("  [seq=%d]\n", nodes[i].Frame.Seq))
		renderTextNodes(sb, nodes[i].Children, depth+1)
	}
}

// RenderHTML renders the tree as a nested HTML list for the inspector page.
func RenderHTML(nodes []Node) string {
	var sb strings.Builder
	renderHTMLNodes(&sb, nodes)
	return sb.String()
}

func renderHTMLNodes(sb *strings.Builder, nodes []Node) {
	if len(nodes) == 0 {
		return
	}
	sb.WriteString("<ul>")
	for i := range nodes {
		f := &nodes[i].Frame
		fmt.Fprintf(sb, `<li class=%q><span class="label">%s</span> <span class="seq">seq=%d</span>`,
			strings.ToLower(f.Kind.String()), html.EscapeString(label(f)), f.Seq)
		renderHTMLNodes(sb, nodes[i].Children)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
}
