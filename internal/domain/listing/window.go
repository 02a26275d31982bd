package listing

// PageLabel is one element of the numbered pagination control: either a page
// number (possibly the active one) or an ellipsis placeholder.
type PageLabel struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Active   bool `json:"active,omitempty"`
}

// PageWindow computes the page-number labels rendered around the current
// page. Page 1 and the last page are always anchored; pages within two of the
// current page fill the window; ellipses stand in for the gaps on either
// side.
func PageWindow(current, total int) []PageLabel {
	if total < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	labels := []PageLabel{{Page: 1, Active: current == 1}}

	if current > 4 {
		labels = append(labels, PageLabel{Ellipsis: true})
	}

	lo := current - 2
	if lo < 2 {
		lo = 2
	}
	hi := current + 2
	if hi > total-1 {
		hi = total - 1
	}
	for p := lo; p <= hi; p++ {
		labels = append(labels, PageLabel{Page: p, Active: p == current})
	}

	if current < total-3 {
		labels = append(labels, PageLabel{Ellipsis: true})
	}

	if total > 1 {
		labels = append(labels, PageLabel{Page: total, Active: current == total})
	}

	return labels
}
