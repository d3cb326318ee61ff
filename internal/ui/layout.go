package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the header drops the API URL
	// and the token expiry.
	LayoutCompactWidth = 100

	// LayoutMinWidth is the narrowest terminal the UI draws for.
	LayoutMinWidth = 40
)

// Fixed chrome heights.
const (
	headerHeight = 1
	footerHeight = 1
)

// contentHeight is what remains for the active view.
func (m Model) contentHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		return 1
	}
	return h
}
