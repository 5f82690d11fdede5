package listview

// PageLinks lays out the pagination control: the first and last page, the
// current page and its neighbours, and an ellipsis for each skipped run.
// Nothing is rendered for fewer than two pages.
func PageLinks(current, total int) []PageLink {
	if total < 2 {
		return nil
	}
	links := make([]PageLink, 0, 7)
	for p := 1; p <= total; p++ {
		switch {
		case p == 1 || p == total || (p >= current-1 && p <= current+1):
			links = append(links, PageLink{Number: p, Current: p == current})
		case p == 2 && current > 3, p == total-1 && current < total-2:
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	return links
}
