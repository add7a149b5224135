package browse

// PageToken is one pagination button: a page number or an ellipsis gap.
type PageToken struct {
	Page     int
	Ellipsis bool
}

const maxButtons = 7

// PageButtons returns the button row for (current, first, last). Seven pages
// or fewer lists every page; beyond that it keeps first and last, a window of
// up to three pages centered on current and clamped inside (first, last), and
// ellipsis markers where the window does not touch the ends. Deterministic for
// any input triple.
func PageButtons(current, first, last int) []PageToken {
	c := current
	if c < first {
		c = first
	}
	if c > last {
		c = last
	}

	var tokens []PageToken
	if last-first+1 <= maxButtons {
		for i := first; i <= last; i++ {
			tokens = append(tokens, PageToken{Page: i})
		}
		return tokens
	}

	tokens = append(tokens, PageToken{Page: first})
	start := c - 1
	if start < first+1 {
		start = first + 1
	}
	end := c + 1
	if end > last-1 {
		end = last - 1
	}
	if start > first+1 {
		tokens = append(tokens, PageToken{Ellipsis: true})
	}
	for i := start; i <= end; i++ {
		tokens = append(tokens, PageToken{Page: i})
	}
	if end < last-1 {
		tokens = append(tokens, PageToken{Ellipsis: true})
	}
	tokens = append(tokens, PageToken{Page: last})
	return tokens
}

// ClampPage bounds a requested page into [first, last].
func ClampPage(page, first, last int) int {
	if page < first {
		return first
	}
	if page > last {
		return last
	}
	return page
}
