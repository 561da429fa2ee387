package components

import "strings"

const (
	scrollTrack = "│"
	scrollThumb = "█"
)

// RenderScrollbar renders a 1-column vertical scrollbar for a view of
// viewHeight lines over contentHeight lines scrolled to yOffset. While the
// content fits, it renders a blank gutter so the layout width stays stable.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}
	if contentHeight <= viewHeight {
		return strings.Repeat(" \n", viewHeight-1) + " "
	}

	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)
	thumbMaxTop := viewHeight - thumbSize
	thumbTop := yOffset * thumbMaxTop / (contentHeight - viewHeight)
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	rows := make([]string, viewHeight)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = scrollThumb
		} else {
			rows[i] = scrollTrack
		}
	}
	return strings.Join(rows, "\n")
}
