package filtergraph

import (
	"fmt"
	"strconv"

	"sharecut/internal/layout"
	"sharecut/internal/services"
	"sharecut/internal/timeline"
)

// Spec carries everything Compile needs.
type Spec struct {
	Geometry   layout.Geometry
	Background layout.Background
	Predicates timeline.Predicates
}

// Compile builds the compositing graph: a speaker-only branch, a combined
// branch when any combined range exists, and a terminal overlay that selects
// the combined branch while its enable expression holds. Labels consumed more
// than once are fanned out through split nodes.
func Compile(spec Spec) (Graph, error) {
	if err := spec.Background.Validate(); err != nil {
		return Graph{}, err
	}
	if !spec.Geometry.Canvas.Valid() {
		return Graph{}, services.Wrap(services.ErrValidation, "filtergraph", "compile",
			fmt.Sprintf("invalid canvas %s", spec.Geometry.Canvas), nil)
	}

	b := &builder{geometry: spec.Geometry, background: spec.Background.Normalized()}
	if len(spec.Predicates.Combined) == 0 {
		b.speaker(OutputLabel)
	} else {
		speaker := b.speaker("speaker")
		combined := b.combined("combined")
		b.add("select", "overlay", []string{speaker, combined}, OutputLabel,
			P("x", "0"),
			P("y", "0"),
			P("enable", Render(EnableFor(spec.Predicates.Combined))),
		)
	}

	g := Graph{Nodes: fanOut(b.nodes), Output: OutputLabel}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

type builder struct {
	geometry   layout.Geometry
	background layout.Background
	nodes      []Node
	bgLabel    string
}

func (b *builder) add(id, op string, inputs []string, output string, params ...Param) string {
	b.nodes = append(b.nodes, Node{
		ID:      id,
		Op:      op,
		Inputs:  inputs,
		Outputs: []string{output},
		Params:  params,
	})
	return output
}

// backgroundLayer emits the looped, canvas-fitted image once and returns its
// label.
func (b *builder) backgroundLayer() string {
	if b.bgLabel != "" {
		return b.bgLabel
	}
	canvas := b.geometry.Canvas
	b.add("background_source", "movie", nil, "bg_source",
		P("filename", b.background.Image),
		P("loop", "0"),
	)
	b.add("background_loop", "setpts", []string{"bg_source"}, "bg_loop",
		P("expr", "N/(FRAME_RATE*TB)"),
	)
	b.add("background_fit", "scale", []string{"bg_loop"}, "bg_fit", fit(canvas)...)
	b.bgLabel = b.add("background", "pad", []string{"bg_fit"}, "bg",
		pad(canvas, "(ow-iw)/2", "(oh-ih)/2", b.background.Color)...,
	)
	return b.bgLabel
}

func (b *builder) speaker(out string) string {
	if !b.geometry.ScaleSpeaker {
		return b.add("speaker", "null", []string{CameraInput}, out)
	}
	canvas := b.geometry.Canvas
	b.add("speaker_fit", "scale", []string{CameraInput}, "speaker_fit", fit(canvas)...)
	if b.background.HasImage() {
		return b.add("speaker", "overlay", []string{b.backgroundLayer(), "speaker_fit"}, out,
			P("x", "(W-w)/2"),
			P("y", "(H-h)/2"),
			P("shortest", "1"),
		)
	}
	return b.add("speaker", "pad", []string{"speaker_fit"}, out,
		pad(canvas, "(ow-iw)/2", "(oh-ih)/2", b.background.Color)...,
	)
}

func (b *builder) combined(out string) string {
	canvas := b.geometry.Canvas
	primary := b.geometry.Primary
	secondary := b.geometry.Secondary

	b.add("slides_fit", "scale", []string{SlidesInput}, "slides_fit", fit(primary.Size())...)
	if b.background.HasImage() {
		b.add("slides_place", "overlay", []string{b.backgroundLayer(), "slides_fit"}, "slides_canvas",
			P("x", position(primary.X, primary.Width, "w", primary.Align)),
			P("y", verticalPosition(primary.Y, primary.Height, "h", primary.Align)),
			P("shortest", "1"),
		)
	} else {
		b.add("slides_place", "pad", []string{"slides_fit"}, "slides_canvas",
			pad(canvas,
				position(primary.X, primary.Width, "iw", primary.Align),
				verticalPosition(primary.Y, primary.Height, "ih", primary.Align),
				b.background.Color)...,
		)
	}

	if secondary.Align == layout.AlignTopLeft {
		b.add("camera_fit", "scale", []string{CameraInput}, "camera_fit",
			P("w", strconv.Itoa(secondary.Width)),
			P("h", "-1"),
		)
	} else {
		b.add("camera_fit", "scale", []string{CameraInput}, "camera_fit", fit(secondary.Size())...)
	}
	return b.add("compose", "overlay", []string{"slides_canvas", "camera_fit"}, out,
		P("x", position(secondary.X, secondary.Width, "w", secondary.Align)),
		P("y", verticalPosition(secondary.Y, secondary.Height, "h", secondary.Align)),
	)
}

// fit scales into size preserving aspect ratio.
func fit(size layout.Dimensions) []Param {
	return []Param{
		P("w", strconv.Itoa(size.Width)),
		P("h", strconv.Itoa(size.Height)),
		P("force_original_aspect_ratio", "decrease"),
	}
}

func pad(canvas layout.Dimensions, x, y, color string) []Param {
	return []Param{
		P("w", strconv.Itoa(canvas.Width)),
		P("h", strconv.Itoa(canvas.Height)),
		P("x", x),
		P("y", y),
		P("color", color),
	}
}

// position places content of width sizeVar inside [origin, origin+extent).
func position(origin, extent int, sizeVar string, align layout.Align) string {
	if align == layout.AlignCenter {
		return centered(origin, extent, sizeVar)
	}
	return strconv.Itoa(origin)
}

func verticalPosition(origin, extent int, sizeVar string, align layout.Align) string {
	if align == layout.AlignTopLeft {
		return strconv.Itoa(origin)
	}
	return centered(origin, extent, sizeVar)
}

func centered(origin, extent int, sizeVar string) string {
	expr := fmt.Sprintf("(%d-%s)/2", extent, sizeVar)
	if origin == 0 {
		return expr
	}
	return fmt.Sprintf("%d+%s", origin, expr)
}

// fanOut inserts a split node for every label read by more than one node and
// rewires each consumer to its own split output. Split nodes for root
// streams precede their first consumer; split nodes for produced labels
// follow their producer.
func fanOut(nodes []Node) []Node {
	uses := make(map[string]int)
	producers := make(map[string]bool)
	for _, n := range nodes {
		for _, in := range n.Inputs {
			uses[in]++
		}
		for _, out := range n.Outputs {
			producers[out] = true
		}
	}

	out := make([]Node, 0, len(nodes)+2)
	taken := make(map[string]int)
	split := make(map[string]bool)
	for _, n := range nodes {
		for _, in := range n.Inputs {
			if uses[in] > 1 && !producers[in] && !split[in] {
				out = append(out, splitNode(in, uses[in]))
				split[in] = true
			}
		}
		rewired := n
		rewired.Inputs = append([]string(nil), n.Inputs...)
		for i, in := range rewired.Inputs {
			if uses[in] > 1 {
				taken[in]++
				rewired.Inputs[i] = splitLabel(in, taken[in])
			}
		}
		out = append(out, rewired)
		for _, label := range n.Outputs {
			if uses[label] > 1 {
				out = append(out, splitNode(label, uses[label]))
			}
		}
	}
	return out
}

func splitNode(label string, count int) Node {
	outputs := make([]string, count)
	for i := range outputs {
		outputs[i] = splitLabel(label, i+1)
	}
	return Node{
		ID:      "split_" + labelBase(label),
		Op:      "split",
		Inputs:  []string{label},
		Outputs: outputs,
		Params:  []Param{{Value: strconv.Itoa(count)}},
	}
}

func splitLabel(label string, n int) string {
	return fmt.Sprintf("%s_%d", labelBase(label), n)
}

func labelBase(label string) string {
	switch label {
	case CameraInput:
		return "camera"
	case SlidesInput:
		return "slides"
	default:
		return label
	}
}
