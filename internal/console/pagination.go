package console

// PageControl is the view-model of the pagination bar.
type PageControl struct {
	Current       int
	TotalPages    int
	TotalElements int64
}

// HasPrev reports whether an earlier page exists.
func (pc PageControl) HasPrev() bool {
	return pc.Current > 0
}

// HasNext reports whether a later page exists.
func (pc PageControl) HasNext() bool {
	return pc.Current < pc.TotalPages-1
}

// Window returns up to n page indexes centered around the current page,
// for rendering numbered page buttons.
func (pc PageControl) Window(n int) []int {
	if pc.TotalPages <= 0 || n <= 0 {
		return nil
	}

	start := pc.Current - n/2
	if start < 0 {
		start = 0
	}
	end := start + n
	if end > pc.TotalPages {
		end = pc.TotalPages
		start = end - n
		if start < 0 {
			start = 0
		}
	}

	pages := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		pages = append(pages, i)
	}
	return pages
}
