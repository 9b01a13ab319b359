// Package pack places fixed-size gradient strips onto atlas pages.
//
// Strips are laid out row-major in the order they are allocated. When a page
// has no row left, allocation continues at the top of a new page.
package pack

import (
	"errors"
	"fmt"
	"sync"
)

// Default strip and page dimensions.
const (
	DefaultStripWidth  = 128
	DefaultStripHeight = 4
	DefaultPageWidth   = 512
	DefaultPageHeight  = 512
)

// ErrStripTooLarge is returned when a strip does not fit on an empty page.
var ErrStripTooLarge = errors.New("pack: strip is larger than the page")

// Region is a strip placement on a page.
type Region struct {
	Page   int
	X      int
	Y      int
	Width  int
	Height int
}

// IsValid returns true if the region has valid dimensions.
func (r Region) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Contains returns true if the pixel (x, y) of the region's page is inside
// the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(page %d, %d,%d %dx%d)", r.Page, r.X, r.Y, r.Width, r.Height)
}

// Layout describes strip and page sizes.
type Layout struct {
	StripWidth  int
	StripHeight int
	PageWidth   int
	PageHeight  int
}

// DefaultLayout returns the 128x4 strip, 512x512 page layout.
func DefaultLayout() Layout {
	return Layout{
		StripWidth:  DefaultStripWidth,
		StripHeight: DefaultStripHeight,
		PageWidth:   DefaultPageWidth,
		PageHeight:  DefaultPageHeight,
	}
}

// Validate reports whether a strip fits on a page.
func (l Layout) Validate() error {
	if l.StripWidth <= 0 || l.StripHeight <= 0 || l.PageWidth <= 0 || l.PageHeight <= 0 {
		return fmt.Errorf("pack: invalid layout %dx%d on %dx%d", l.StripWidth, l.StripHeight, l.PageWidth, l.PageHeight)
	}
	if l.StripWidth > l.PageWidth || l.StripHeight > l.PageHeight {
		return ErrStripTooLarge
	}
	return nil
}

// PerRow returns how many strips fit side by side.
func (l Layout) PerRow() int {
	return l.PageWidth / l.StripWidth
}

// PerPage returns how many strips fit on one page.
func (l Layout) PerPage() int {
	return l.PerRow() * (l.PageHeight / l.StripHeight)
}

// Place returns the region of the strip with the given sequence index.
//
// Within a page, strip i sits at x = (i*w) % pageW and
// y = floor(i*w / pageW) * h.
func (l Layout) Place(index int) Region {
	perPage := l.PerPage()
	if perPage == 0 || index < 0 {
		return Region{}
	}
	page, local := index/perPage, index%perPage
	offset := local * l.StripWidth
	row := offset / l.PageWidth
	if l.PageWidth%l.StripWidth != 0 {
		// strips never straddle the right edge
		row = local / l.PerRow()
		offset = (local % l.PerRow()) * l.StripWidth
	}
	return Region{
		Page:   page,
		X:      offset % l.PageWidth,
		Y:      row * l.StripHeight,
		Width:  l.StripWidth,
		Height: l.StripHeight,
	}
}

// Pages returns the number of pages needed for count strips.
func (l Layout) Pages(count int) int {
	perPage := l.PerPage()
	if count <= 0 || perPage == 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// Allocator hands out strip regions in sequence.
type Allocator struct {
	mu     sync.Mutex
	layout Layout
	next   int
}

// NewAllocator creates an allocator for the layout.
func NewAllocator(l Layout) (*Allocator, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &Allocator{layout: l}, nil
}

// Layout returns the allocator layout.
func (a *Allocator) Layout() Layout {
	return a.layout
}

// Allocate returns the region for the next strip and its sequence index.
func (a *Allocator) Allocate() (int, Region) {
	a.mu.Lock()
	defer a.mu.Unlock()

	index := a.next
	a.next++
	return index, a.layout.Place(index)
}

// Count returns how many strips have been allocated.
func (a *Allocator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}

// Pages returns the number of pages in use.
func (a *Allocator) Pages() int {
	return a.layout.Pages(a.Count())
}

// Reset forgets all allocations.
func (a *Allocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = 0
}

// CompactLayout returns a layout two strips wide that is just tall enough
// to hold count strips on a single page.
func CompactLayout(count, stripWidth, stripHeight int) Layout {
	pageW := stripWidth * 2
	rows := (count*stripWidth)/pageW + 1
	return Layout{
		StripWidth:  stripWidth,
		StripHeight: stripHeight,
		PageWidth:   pageW,
		PageHeight:  rows * stripHeight,
	}
}
