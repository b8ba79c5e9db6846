package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/search"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func priceCell(p model.Product) string {
	if p.OnSale == nil {
		return "$" + p.Price.String()
	}
	return fmt.Sprintf("$%s (was $%s)", p.EffectivePrice().String(), p.Price.String())
}

func categoryNames(p model.Product) string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func printProducts(w io.Writer, products []model.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCKS\tCATEGORIES\t")
	for _, p := range products {
		name := p.Name
		if p.IsNew() {
			name += " [new]"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t\n", p.ID, name, priceCell(p), p.Stocks, categoryNames(p))
	}
	_ = tw.Flush()
}

func printState(w io.Writer, st search.State, asJSON bool) error {
	if asJSON {
		return writeJSON(w, st)
	}

	if len(st.NewlyAdded) > 0 {
		fmt.Fprintln(w, "Newly added:")
		printProducts(w, st.NewlyAdded)
	}
	if st.Active != nil {
		fmt.Fprintf(w, "Search %s %q\n", st.Active.Criteria.Kind, st.Active.Criteria.Value)
		printProducts(w, st.Results)
		if st.Page.Total == 0 {
			fmt.Fprintln(w, "No products found.")
		} else {
			fmt.Fprintf(w, "Page %d of %d\n", st.Page.Index, st.Page.Total)
		}
	}
	if st.Loading {
		fmt.Fprintln(w, "Loading...")
	}
	if st.ErrMsg != "" {
		fmt.Fprintf(w, "Error: %s\n", st.ErrMsg)
	}
	return nil
}

func printCart(w io.Writer, items []model.CartItem) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPRODUCT\tNAME\tPRICE\tSTOCKS\t")
	for _, item := range items {
		p := item.Product
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%d\t\n", item.ID, p.ID, p.Name, priceCell(p), p.Stocks)
	}
	_ = tw.Flush()
}

func printSummary(w io.Writer, s *checkout.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tAMOUNTS\tSTOCKS\tPRICE\t")
	for _, line := range s.Lines {
		p := line.Product
		stock := fmt.Sprintf("%d", p.Stocks)
		if !line.InStock() {
			stock += " (not enough)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t\n", p.ID, p.Name, line.Amounts, stock, priceCell(p))
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Total: $%s\n", s.Total.String())
	if s.MemberDiscount {
		fmt.Fprintf(w, "Discount: %s%%\n", s.Discount.Shift(2).String())
		fmt.Fprintf(w, "After Discount: $%s\n", s.Payable.String())
	}
	if !s.Purchasable {
		fmt.Fprintln(w, "This cart cannot be purchased: it is empty or a product is out of stock.")
	}
}

func printCarouselPage(w io.Writer, c *catalog.Carousel) {
	fmt.Fprintf(w, "Page %d of %d\n", c.Current(), len(c.Pages))
	for _, slot := range c.Visible() {
		if slot.Placeholder {
			fmt.Fprintln(w, "  -")
			continue
		}
		fmt.Fprintf(w, "  [%d] %s  %s\n", slot.Product.ID, slot.Product.Name, priceCell(slot.Product))
	}
}
