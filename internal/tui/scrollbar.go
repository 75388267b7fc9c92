package tui

import "strings"

// scrollbarThumb computes the thumb height and offset for a manual
// scrollbar. viewport is the visible height, total the full content height
// in lines, scrollPos the current top line.
func scrollbarThumb(viewport, total, scrollPos int) (height, offset int) {
	if total <= viewport || viewport <= 0 {
		return 0, 0
	}

	height = viewport * viewport / total
	if height < 1 {
		height = 1
	}

	maxScroll := total - viewport
	if maxScroll > 0 {
		offset = scrollPos * (viewport - height) / maxScroll
	}
	if offset > viewport-height {
		offset = viewport - height
	}
	return height, offset
}

// renderScrollbar draws a one-column scrollbar track of the given height.
func renderScrollbar(viewport, total, scrollPos int) string {
	height, offset := scrollbarThumb(viewport, total, scrollPos)
	if height == 0 {
		return strings.TrimRight(strings.Repeat(" \n", viewport), "\n")
	}

	var b strings.Builder
	for i := 0; i < viewport; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= offset && i < offset+height {
			b.WriteString(scrollThumbStyle.Render("┃"))
		} else {
			b.WriteString(scrollTrackStyle.Render("│"))
		}
	}
	return b.String()
}
