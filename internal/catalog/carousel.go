// Package catalog lays product lists out as a paged carousel.
package catalog

import (
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

const DefaultPerPage = 3

// Slot is one card position. Placeholder slots keep later pages full width.
type Slot struct {
	Product     model.Product
	Placeholder bool
}

// Paginate splits products into pages of perPage. Every page after the first
// is padded with placeholders up to perPage.
func Paginate(products []model.Product, perPage int) [][]Slot {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	var pages [][]Slot
	for start := 0; start < len(products); start += perPage {
		end := min(start+perPage, len(products))
		page := make([]Slot, 0, perPage)
		for _, p := range products[start:end] {
			page = append(page, Slot{Product: p})
		}
		if start > 0 {
			for len(page) < perPage {
				page = append(page, Slot{Placeholder: true})
			}
		}
		pages = append(pages, page)
	}
	return pages
}

// Carousel tracks the visible page of a paginated product list.
type Carousel struct {
	Pages   [][]Slot
	current int
}

func NewCarousel(products []model.Product, perPage int) *Carousel {
	return &Carousel{Pages: Paginate(products, perPage), current: 1}
}

func (c *Carousel) Current() int { return c.current }

func (c *Carousel) Visible() []Slot {
	if len(c.Pages) == 0 {
		return nil
	}
	return c.Pages[c.current-1]
}

// Show moves to page and names the slide transition, e.g. "page1to3".
func (c *Carousel) Show(page int) (string, error) {
	if page < 1 || page > len(c.Pages) {
		return "", fmt.Errorf("page %d out of range [1, %d]", page, len(c.Pages))
	}
	transition := fmt.Sprintf("page%dto%d", c.current, page)
	c.current = page
	return transition, nil
}
