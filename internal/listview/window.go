package listview

// Window decides which slice of the derived list is shown.
type Window interface {
	// Bounds returns the half-open range [start, end) to display for a
	// list of total items. It never addresses past total.
	Bounds(total int) (start, end int)
	// Reset returns the window to its initial position.
	Reset()
}

// Progressive shows a growing prefix of the list ("load more").
type Progressive struct {
	initial int
	step    int
	count   int
}

func NewProgressive(initial, step int) *Progressive {
	if initial < 1 {
		initial = 1
	}
	if step < 1 {
		step = initial
	}
	return &Progressive{initial: initial, step: step, count: initial}
}

// More reveals another step of items.
func (p *Progressive) More() {
	p.count += p.step
}

func (p *Progressive) Reset() {
	p.count = p.initial
}

// Visible is the number of items shown for a list of total items.
func (p *Progressive) Visible(total int) int {
	return min(p.count, max(total, 0))
}

// HasMore reports whether More would reveal anything.
func (p *Progressive) HasMore(total int) bool {
	return p.count < total
}

func (p *Progressive) Bounds(total int) (int, int) {
	return 0, p.Visible(total)
}

// Paged shows one fixed-size page at a time.
type Paged struct {
	size int
	page int
}

func NewPaged(size int) *Paged {
	if size < 1 {
		size = 1
	}
	return &Paged{size: size, page: 1}
}

func (p *Paged) Size() int { return p.size }

// Page is the current 1-based page number.
func (p *Paged) Page() int { return p.page }

// Pages is the page count for total items; an empty list has one page.
func (p *Paged) Pages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.size - 1) / p.size
}

// Clamp moves the current page into [1, Pages(total)].
func (p *Paged) Clamp(total int) {
	p.page = min(max(p.page, 1), p.Pages(total))
}

// SetPage jumps to page n, clamped.
func (p *Paged) SetPage(n, total int) {
	p.page = n
	p.Clamp(total)
}

func (p *Paged) First() { p.page = 1 }

func (p *Paged) Prev() {
	if p.page > 1 {
		p.page--
	}
}

func (p *Paged) Next(total int) {
	p.Clamp(total)
	if p.page < p.Pages(total) {
		p.page++
	}
}

func (p *Paged) Last(total int) {
	p.page = p.Pages(total)
}

func (p *Paged) CanPrev() bool { return p.page > 1 }

func (p *Paged) CanNext(total int) bool { return p.page < p.Pages(total) }

func (p *Paged) Reset() { p.page = 1 }

func (p *Paged) Bounds(total int) (int, int) {
	p.Clamp(total)
	if total <= 0 {
		return 0, 0
	}
	start := (p.page - 1) * p.size
	end := min(start+p.size, total)
	return start, end
}
