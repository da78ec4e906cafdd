package ui

import (
	"encoding/json"
	"fmt"
)

// Transform is the authored placement of an element relative to its parent.
// x2/y2/width2/height2 are fractions of the parent size.
type Transform struct {
	AnchorX  float64 `json:"anchorX"`
	AnchorY  float64 `json:"anchorY"`
	X        float64 `json:"x"`
	X2       float64 `json:"x2"`
	Y        float64 `json:"y"`
	Y2       float64 `json:"y2"`
	Width    float64 `json:"width"`
	Width2   float64 `json:"width2"`
	Height   float64 `json:"height"`
	Height2  float64 `json:"height2"`
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	SkewX    float64 `json:"skewX"`
	SkewY    float64 `json:"skewY"`
	Opacity  float64 `json:"opacity"`
}

func DefaultTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

func (t *Transform) field(key string) *float64 {
	switch key {
	case "anchorX":
		return &t.AnchorX
	case "anchorY":
		return &t.AnchorY
	case "x":
		return &t.X
	case "x2":
		return &t.X2
	case "y":
		return &t.Y
	case "y2":
		return &t.Y2
	case "width":
		return &t.Width
	case "width2":
		return &t.Width2
	case "height":
		return &t.Height
	case "height2":
		return &t.Height2
	case "rotation":
		return &t.Rotation
	case "scaleX":
		return &t.ScaleX
	case "scaleY":
		return &t.ScaleY
	case "skewX":
		return &t.SkewX
	case "skewY":
		return &t.SkewY
	case "opacity":
		return &t.Opacity
	}
	return nil
}

// Get reads a property by its data key.
func (t *Transform) Get(key string) (float64, bool) {
	if p := t.field(key); p != nil {
		return *p, true
	}
	return 0, false
}

// Set writes a property by its data key. Unknown keys are ignored.
func (t *Transform) Set(key string, v float64) bool {
	if p := t.field(key); p != nil {
		*p = v
		return true
	}
	return false
}

// Props maps transform keys to values for Set and Move.
type Props map[string]float64

// Node is a preset element definition as stored in a UI file.
type Node struct {
	Class         string               `json:"class"`
	PresetID      string               `json:"presetId"`
	ReferenceID   string               `json:"referenceId,omitempty"`
	PrefabID      string               `json:"prefabId,omitempty"`
	Synchronous   bool                 `json:"synchronous,omitempty"`
	Name          string               `json:"name"`
	Enabled       bool                 `json:"enabled"`
	PointerEvents string               `json:"pointerEvents"`
	Events        map[string]*Commands `json:"events"`
	Scripts       []ScriptRef          `json:"scripts"`
	Transform     Transform            `json:"transform"`
	Children      []*Node              `json:"children"`

	Image     *ImageData       `json:"-"`
	Text      *TextData        `json:"-"`
	TextBox   *TextBoxData     `json:"-"`
	DialogBox *DialogBoxData   `json:"-"`
	Progress  *ProgressBarData `json:"-"`
	Button    *ButtonData      `json:"-"`
	Animation *AnimationData   `json:"-"`
	Video     *VideoData       `json:"-"`
	Window    *WindowData      `json:"-"`

	ui *File
}

// UIFile returns the file the node was loaded from, if any.
func (n *Node) UIFile() *File { return n.ui }

// NewNode returns a node of the given class filled with defaults.
func NewNode(class string) *Node {
	n := &Node{
		Class:         class,
		Enabled:       true,
		PointerEvents: "enabled",
		Events:        map[string]*Commands{},
		Transform:     DefaultTransform(),
	}
	n.defaultKind()
	return n
}

func (n *Node) defaultKind() {
	switch n.Class {
	case "image":
		n.Image = DefaultImageData()
	case "text":
		n.Text = DefaultTextData()
	case "textbox":
		n.TextBox = DefaultTextBoxData()
	case "dialogbox":
		n.DialogBox = DefaultDialogBoxData()
	case "progressbar":
		n.Progress = DefaultProgressBarData()
	case "button":
		n.Button = DefaultButtonData()
	case "animation":
		n.Animation = DefaultAnimationData()
	case "video":
		n.Video = DefaultVideoData()
	case "window":
		n.Window = DefaultWindowData()
	}
}

func (n *Node) kindData() any {
	switch n.Class {
	case "image":
		return n.Image
	case "text":
		return n.Text
	case "textbox":
		return n.TextBox
	case "dialogbox":
		return n.DialogBox
	case "progressbar":
		return n.Progress
	case "button":
		return n.Button
	case "animation":
		return n.Animation
	case "video":
		return n.Video
	case "window":
		return n.Window
	}
	return nil
}

func (n *Node) UnmarshalJSON(b []byte) error {
	type plain Node
	var head struct {
		Class string `json:"class"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	p := (*plain)(NewNode(head.Class))
	if err := json.Unmarshal(b, p); err != nil {
		return fmt.Errorf("node %s: %w", head.Class, err)
	}
	*n = Node(*p)
	if kd := n.kindData(); kd != nil {
		if err := json.Unmarshal(b, kd); err != nil {
			return fmt.Errorf("node %s %q: %w", n.Class, n.PresetID, err)
		}
	}
	return nil
}

// File is one UI file: a named tree of preset nodes.
type File struct {
	ID    string  `json:"id"`
	Path  string  `json:"path"`
	Nodes []*Node `json:"nodes"`
}

type ImageData struct {
	Image   string     `json:"image"`
	Display string     `json:"display"`
	Flip    string     `json:"flip"`
	Blend   string     `json:"blend"`
	ShiftX  float64    `json:"shiftX"`
	ShiftY  float64    `json:"shiftY"`
	Clip    [4]float64 `json:"clip"`
	Border  float64    `json:"border"`
	Tint    [4]float64 `json:"tint"`
}

func DefaultImageData() *ImageData {
	return &ImageData{Display: "stretch", Flip: "none", Blend: "normal", Clip: [4]float64{0, 0, 32, 32}, Border: 1}
}

type TextData struct {
	Direction       string     `json:"direction"`
	HorizontalAlign string     `json:"horizontalAlign"`
	VerticalAlign   string     `json:"verticalAlign"`
	Content         string     `json:"content"`
	Size            float64    `json:"size"`
	LineSpacing     float64    `json:"lineSpacing"`
	LetterSpacing   float64    `json:"letterSpacing"`
	Color           string     `json:"color"`
	Font            string     `json:"font"`
	Typeface        string     `json:"typeface"`
	Effect          TextEffect `json:"effect"`
	Overflow        string     `json:"overflow"`
	Blend           string     `json:"blend"`
}

func DefaultTextData() *TextData {
	return &TextData{
		Direction:       "horizontal-tb",
		HorizontalAlign: "left",
		VerticalAlign:   "middle",
		Content:         "New Text",
		Size:            16,
		Color:           "ffffffff",
		Typeface:        "regular",
		Effect:          TextEffect{Type: "none"},
		Overflow:        "visible",
		Blend:           "normal",
	}
}

type TextBoxData struct {
	Type             string  `json:"type"`
	Align            string  `json:"align"`
	Text             string  `json:"text"`
	MaxLength        int     `json:"maxLength"`
	Number           float64 `json:"number"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Decimals         int     `json:"decimals"`
	Padding          float64 `json:"padding"`
	Size             float64 `json:"size"`
	Font             string  `json:"font"`
	Color            string  `json:"color"`
	SelectionColor   string  `json:"selectionColor"`
	SelectionBgColor string  `json:"selectionBgColor"`
}

func DefaultTextBoxData() *TextBoxData {
	return &TextBoxData{
		Type:             "text",
		Align:            "left",
		Text:             "Content",
		MaxLength:        16,
		Padding:          4,
		Size:             16,
		Color:            "ffffffff",
		SelectionColor:   "ffffffff",
		SelectionBgColor: "0090ccff",
	}
}

type DialogBoxData struct {
	Content       string     `json:"content"`
	Interval      float64    `json:"interval"`
	Size          float64    `json:"size"`
	LineSpacing   float64    `json:"lineSpacing"`
	LetterSpacing float64    `json:"letterSpacing"`
	Color         string     `json:"color"`
	Font          string     `json:"font"`
	Typeface      string     `json:"typeface"`
	Effect        TextEffect `json:"effect"`
	Blend         string     `json:"blend"`
}

func DefaultDialogBoxData() *DialogBoxData {
	return &DialogBoxData{
		Content:  "Content",
		Interval: 16.6666,
		Size:     16,
		Color:    "ffffffff",
		Typeface: "regular",
		Effect:   TextEffect{Type: "none"},
		Blend:    "normal",
	}
}

type ProgressBarData struct {
	Image        string     `json:"image"`
	Display      string     `json:"display"`
	Clip         [4]float64 `json:"clip"`
	Type         string     `json:"type"`
	CenterX      float64    `json:"centerX"`
	CenterY      float64    `json:"centerY"`
	StartAngle   float64    `json:"startAngle"`
	CentralAngle float64    `json:"centralAngle"`
	Step         float64    `json:"step"`
	Progress     float64    `json:"progress"`
	Blend        string     `json:"blend"`
	ColorMode    string     `json:"colorMode"`
	Color        [4]float64 `json:"color"`
}

func DefaultProgressBarData() *ProgressBarData {
	return &ProgressBarData{
		Display:      "stretch",
		Clip:         [4]float64{0, 0, 32, 32},
		Type:         "horizontal",
		CenterX:      0.5,
		CenterY:      0.5,
		StartAngle:   -90,
		CentralAngle: 360,
		Progress:     1,
		Blend:        "normal",
		ColorMode:    "texture",
	}
}

type ButtonData struct {
	Display         string     `json:"display"`
	Flip            string     `json:"flip"`
	Border          float64    `json:"border"`
	ImageOpacity    float64    `json:"imageOpacity"`
	ImagePadding    float64    `json:"imagePadding"`
	TextPadding     float64    `json:"textPadding"`
	NormalImage     string     `json:"normalImage"`
	NormalClip      [4]float64 `json:"normalClip"`
	HoverImage      string     `json:"hoverImage"`
	HoverClip       [4]float64 `json:"hoverClip"`
	ActiveImage     string     `json:"activeImage"`
	ActiveClip      [4]float64 `json:"activeClip"`
	NormalColor     string     `json:"normalColor"`
	HoverColor      string     `json:"hoverColor"`
	ActiveColor     string     `json:"activeColor"`
	ImageEffect     string     `json:"imageEffect"`
	NormalTint      [4]float64 `json:"normalTint"`
	HoverTint       [4]float64 `json:"hoverTint"`
	ActiveTint      [4]float64 `json:"activeTint"`
	HoverSound      string     `json:"hoverSound"`
	ClickSound      string     `json:"clickSound"`
	Direction       string     `json:"direction"`
	HorizontalAlign string     `json:"horizontalAlign"`
	VerticalAlign   string     `json:"verticalAlign"`
	Content         string     `json:"content"`
	Size            float64    `json:"size"`
	LetterSpacing   float64    `json:"letterSpacing"`
	Font            string     `json:"font"`
	Typeface        string     `json:"typeface"`
	TextEffect      TextEffect `json:"textEffect"`
}

func DefaultButtonData() *ButtonData {
	return &ButtonData{
		Display:         "stretch",
		Flip:            "none",
		Border:          1,
		ImageOpacity:    1,
		NormalClip:      [4]float64{0, 0, 32, 32},
		HoverClip:       [4]float64{0, 0, 32, 32},
		ActiveClip:      [4]float64{0, 0, 32, 32},
		NormalColor:     "ffffffff",
		ImageEffect:     "none",
		Direction:       "horizontal-tb",
		HorizontalAlign: "center",
		VerticalAlign:   "middle",
		Content:         "Button",
		Size:            16,
		Typeface:        "regular",
		TextEffect:      TextEffect{Type: "none"},
	}
}

type AnimationData struct {
	Animation string  `json:"animation"`
	Motion    string  `json:"motion"`
	Autoplay  bool    `json:"autoplay"`
	Rotatable bool    `json:"rotatable"`
	Angle     float64 `json:"angle"`
	Frame     int     `json:"frame"`
	OffsetX   float64 `json:"offsetX"`
	OffsetY   float64 `json:"offsetY"`
}

func DefaultAnimationData() *AnimationData {
	return &AnimationData{Autoplay: true}
}

type VideoData struct {
	Video        string  `json:"video"`
	PlaybackRate float64 `json:"playbackRate"`
	Loop         bool    `json:"loop"`
	Flip         string  `json:"flip"`
	Blend        string  `json:"blend"`
}

func DefaultVideoData() *VideoData {
	return &VideoData{PlaybackRate: 1, Flip: "none", Blend: "normal"}
}

type WindowData struct {
	Layout     string  `json:"layout"`
	ScrollX    float64 `json:"scrollX"`
	ScrollY    float64 `json:"scrollY"`
	GridWidth  float64 `json:"gridWidth"`
	GridHeight float64 `json:"gridHeight"`
	GridGapX   float64 `json:"gridGapX"`
	GridGapY   float64 `json:"gridGapY"`
	PaddingX   float64 `json:"paddingX"`
	PaddingY   float64 `json:"paddingY"`
	Overflow   string  `json:"overflow"`
}

func DefaultWindowData() *WindowData {
	return &WindowData{Layout: "normal", Overflow: "visible"}
}

func parseBlend(s string) (Blend, bool) {
	switch s {
	case "normal":
		return BlendNormal, true
	case "additive":
		return BlendAdditive, true
	case "subtract":
		return BlendSubtract, true
	case "max":
		return BlendMax, true
	case "mask":
		return BlendMask, true
	}
	return BlendNormal, false
}

func (b Blend) String() string {
	switch b {
	case BlendAdditive:
		return "additive"
	case BlendSubtract:
		return "subtract"
	case BlendMax:
		return "max"
	case BlendMask:
		return "mask"
	}
	return "normal"
}
