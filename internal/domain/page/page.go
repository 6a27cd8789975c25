// Package page slices the ranked list into fixed-size rotating pages.
package page

// View describes the window selected for one tick, for slicing and for the
// display caption.
type View struct {
	Page       int // 0-based page index
	TotalPages int // always >= 1
	Start      int // inclusive
	End        int // exclusive
	Total      int // total number of entries
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool { return v.Total == 0 }

// Slice selects the active window over n entries for the given tick.
// total_pages is max(1, ceil(n/pageSize)) and the page index wraps with the
// tick, so sweeping tick over one full cycle covers every entry exactly
// once. Safe for n = 0 (empty view, page 0 of 1).
func Slice(n, pageSize, tick int) View {
	if pageSize < 1 {
		pageSize = 1
	}
	if n < 0 {
		n = 0
	}
	if tick < 0 {
		tick = 0
	}

	totalPages := (n + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	p := tick % totalPages
	start := p * pageSize
	end := start + pageSize
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}

	return View{
		Page:       p,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
		Total:      n,
	}
}
