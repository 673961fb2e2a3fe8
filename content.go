package slider

// Class markers of the slide content sections.
const (
	ClassContent     = "slider-content"
	ClassSlideTitle  = "slide-title"
	ClassDescription = "slide-description"
	ClassInfo        = "slide-info"
)

const (
	contentMargin     = 40
	descriptionMaxW   = 360
	descriptionWRatio = 0.3
	infoGap           = 24
)

// SlideStyle carries the fonts and colors used to build slide content.
type SlideStyle struct {
	TitleFont Font
	BodyFont  Font
	Text      Color
	Muted     Color
}

// BuildSlideContent creates the text subtree of one slide: a title, a
// description paragraph and three info lines. The subtree starts fully
// transparent; callers decompose it, position its targets and then make it
// visible.
func BuildSlideContent(s Slide, style SlideStyle, viewport Vec2) *Node {
	content := NewContainer("slider-content")
	content.Class = ClassContent
	content.Alpha = 0

	titleBox := NewContainer("slide-title")
	titleBox.Class = ClassSlideTitle
	title := NewText("title", s.Title, style.TitleFont)
	title.Class = ClassTitle
	title.TextBlock.Color = style.Text
	title.TextBlock.WrapWidth = max(viewport.X-2*contentMargin, 1)
	titleBox.AddChild(title)
	content.AddChild(titleBox)

	descBox := NewContainer("slide-description")
	descBox.Class = ClassDescription
	desc := NewText("description", s.Description, style.BodyFont)
	desc.Class = ClassParagraph
	desc.TextBlock.Color = style.Text
	desc.TextBlock.WrapWidth = descriptionWidth(viewport)
	descBox.AddChild(desc)

	info := NewContainer("slide-info")
	info.Class = ClassInfo
	for _, line := range []string{"Type. " + s.Type, "Field. " + s.Field, "Date.  " + s.Date} {
		p := NewText("info", line, style.BodyFont)
		p.Class = ClassParagraph
		p.TextBlock.Color = style.Muted
		p.TextBlock.WrapWidth = descriptionWidth(viewport)
		info.AddChild(p)
	}
	descBox.AddChild(info)
	content.AddChild(descBox)

	PlaceContent(content, viewport)
	return content
}

func descriptionWidth(viewport Vec2) float64 {
	return max(min(descriptionMaxW, viewport.X*descriptionWRatio), 1)
}

// blockHeight returns the laid-out height of a text node, whether or not it
// has been decomposed.
func blockHeight(n *Node) float64 {
	if n.TextBlock != nil && n.TextBlock.Content != "" {
		_, h := n.TextBlock.Measure()
		return h
	}
	return n.Height
}

// PlaceContent positions the sections of a content subtree for the viewport:
// the title centered vertically on the left, the description and info lines
// stacked at the bottom left. Decomposed text is moved, not re-wrapped.
func PlaceContent(content *Node, viewport Vec2) {
	if titleBox := content.Find(ClassSlideTitle); titleBox != nil {
		var h float64
		if t := titleBox.Find(ClassTitle); t != nil {
			h = blockHeight(t)
		}
		titleBox.SetPosition(contentMargin, (viewport.Y-h)/2)
	}

	descBox := content.Find(ClassDescription)
	if descBox == nil {
		return
	}
	var y float64
	for _, c := range descBox.Children() {
		switch {
		case c.HasClass(ClassParagraph):
			c.SetPosition(0, y)
			y += blockHeight(c) + infoGap
		case c.HasClass(ClassInfo):
			c.SetPosition(0, y)
			var iy float64
			for _, p := range c.Children() {
				p.SetPosition(0, iy)
				iy += blockHeight(p)
			}
			y += iy
		}
	}
	descBox.SetPosition(contentMargin, viewport.Y-contentMargin-y)
}
