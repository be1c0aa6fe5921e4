package views

const defaultPageSize = 20

// Paginator tracks a cursor over a list and the page that contains it
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Paginator{
		pageSize: pageSize,
	}
}

// PageSize returns the number of rows per page
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// SetPageSize changes the number of rows per page, keeping the cursor
// on screen
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = defaultPageSize
	}
	p.pageSize = size
	p.pageOffset = (p.cursor / p.pageSize) * p.pageSize
}

// SetTotal sets the total number of items
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	if p.cursor >= total && total > 0 {
		p.cursor = total - 1
	}
	if total == 0 {
		p.cursor = 0
	}
	p.ensureCursorInPage()
}

// Total returns the number of items
func (p *Paginator) Total() int {
	return p.totalItems
}

// Cursor returns the current cursor position (absolute index)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor sets the cursor position
func (p *Paginator) SetCursor(pos int) {
	if pos >= p.totalItems {
		pos = p.totalItems - 1
	}
	if pos < 0 {
		pos = 0
	}
	p.cursor = pos
	p.ensureCursorInPage()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor > 0 {
		p.cursor--
		p.ensureCursorInPage()
		return true
	}
	return false
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor < p.totalItems-1 {
		p.cursor++
		p.ensureCursorInPage()
		return true
	}
	return false
}

// Home moves to the first item
func (p *Paginator) Home() {
	p.SetCursor(0)
}

// End moves to the last item
func (p *Paginator) End() {
	p.SetCursor(p.totalItems - 1)
}

// VisibleRange returns the start and end indices for the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// TotalPages returns the total number of pages
func (p *Paginator) TotalPages() int {
	if p.totalItems == 0 {
		return 1
	}
	return (p.totalItems + p.pageSize - 1) / p.pageSize
}

// CurrentPage returns the current page number (1-based)
func (p *Paginator) CurrentPage() int {
	return p.pageOffset/p.pageSize + 1
}

// NextPage moves to the next page
func (p *Paginator) NextPage() bool {
	if p.pageOffset+p.pageSize < p.totalItems {
		p.pageOffset += p.pageSize
		p.cursor = p.pageOffset
		return true
	}
	return false
}

// PrevPage moves to the previous page
func (p *Paginator) PrevPage() bool {
	if p.pageOffset > 0 {
		p.pageOffset = max(p.pageOffset-p.pageSize, 0)
		p.cursor = p.pageOffset
		return true
	}
	return false
}

// Reset moves the cursor back to the top
func (p *Paginator) Reset() {
	p.cursor = 0
	p.pageOffset = 0
}

func (p *Paginator) ensureCursorInPage() {
	if p.cursor < p.pageOffset || p.cursor >= p.pageOffset+p.pageSize {
		p.pageOffset = (p.cursor / p.pageSize) * p.pageSize
	}
}
