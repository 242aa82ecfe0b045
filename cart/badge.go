package cart

import "strconv"

// BadgeText projects a cart count onto badge display state. An empty cart
// hides the badge rather than showing a zero.
func BadgeText(count int) (text string, visible bool) {
	if count <= 0 {
		return "", false
	}
	return strconv.Itoa(count), true
}

// BindBadge subscribes a badge display to the store. render receives the
// projected text and visibility after every cart change.
func (s *Store) BindBadge(render func(text string, visible bool)) {
	s.Subscribe(func(lines []Line) {
		count := 0
		for _, l := range lines {
			count += l.Quantity
		}
		text, visible := BadgeText(count)
		render(text, visible)
	})
}
