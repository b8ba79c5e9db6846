package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/search"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shellHelp = `commands:
  kind <all|name|stocks|category>  switch the search kind
  input <value>                    edit the search value
  submit [value]                   search with the current input
  page <n> | next | prev           move through the active search
  categories                       list known categories
  product <id>                     show one product
  added <id>                       pin a newly created product above the results
  refresh                          drop cached product and category lists
  state                            print the current state
  help                             show this help
  quit                             leave the console`

// console drives one search controller from line input. Searches run in the
// background so a slow response never blocks typing; the controller discards
// responses that a newer search has superseded.
type console struct {
	app  *app
	ctrl *search.Controller
	out  io.Writer

	mu sync.Mutex
	wg sync.WaitGroup
}

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "interactive product search console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := &console{app: a, ctrl: a.newController(), out: a.out}
			return c.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func (c *console) run(ctx context.Context, in io.Reader) error {
	c.print(c.ctrl.Init(ctx))
	c.println(shellHelp)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := readLines(readCtx, in)

	defer c.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := c.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

func (c *console) handle(ctx context.Context, line string) bool {
	verb, arg := splitCommand(line)
	switch verb {
	case "":
	case "quit", "exit":
		return true
	case "help":
		c.println(shellHelp)
	case "state":
		c.print(c.ctrl.State())
	case "kind":
		kind, err := search.ParseKind(arg)
		if err != nil {
			c.println("Error: " + err.Error())
			return false
		}
		st := c.ctrl.SelectKind(kind)
		c.println(fmt.Sprintf("kind %s, input %q", st.Input.Kind, st.Input.Value))
	case "input":
		st := c.ctrl.State()
		c.ctrl.SetInput(search.Criteria{Kind: st.Input.Kind, Value: arg})
	case "submit":
		criteria := c.ctrl.State().Input
		if arg != "" {
			criteria.Value = arg
		}
		c.background(func() search.State { return c.ctrl.SubmitSearch(ctx, criteria) })
	case "page", "next", "prev":
		target, err := c.targetPage(verb, arg)
		if err != nil {
			c.println("Error: " + err.Error())
			return false
		}
		c.background(func() search.State { return c.ctrl.ChangePage(ctx, target) })
	case "categories":
		for _, cat := range c.ctrl.State().Categories {
			c.println(fmt.Sprintf("  %d  %s", cat.ID, cat.Name))
		}
	case "product":
		c.showProduct(ctx, arg)
	case "added":
		c.pinProduct(ctx, arg)
	case "refresh":
		c.refresh(ctx)
	default:
		c.println(fmt.Sprintf("unknown command %q, try help", verb))
	}
	return false
}

func (c *console) targetPage(verb, arg string) (int, error) {
	current := c.ctrl.State().Page.Index
	switch verb {
	case "next":
		return current + 1, nil
	case "prev":
		return current - 1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("page must be a number")
	}
	return n, nil
}

func (c *console) background(fn func() search.State) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.print(fn())
	}()
}

func (c *console) lookupProduct(ctx context.Context, arg string) (*model.Product, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		c.println("Error: product id must be a number")
		return nil, false
	}
	p, err := c.app.products.GetProduct(ctx, id)
	if err != nil {
		c.println("Error: " + err.Error())
		return nil, false
	}
	if p == nil {
		c.println("Error: product not found")
		return nil, false
	}
	return p, true
}

func (c *console) showProduct(ctx context.Context, arg string) {
	p, ok := c.lookupProduct(ctx, arg)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	printProducts(c.out, []model.Product{*p})
	if p.Description != "" {
		fmt.Fprintln(c.out, p.Description)
	}
	if url := p.CoverURL(); url != "" {
		fmt.Fprintln(c.out, url)
	}
}

// pinProduct shows a product created elsewhere (e.g. the admin form) on top of
// the results until the next search.
func (c *console) pinProduct(ctx context.Context, arg string) {
	p, ok := c.lookupProduct(ctx, arg)
	if !ok {
		return
	}
	c.print(c.ctrl.AddNewlyAdded(*p))
}

func (c *console) refresh(ctx context.Context) {
	if err := c.app.products.InvalidateCache(ctx); err != nil {
		c.app.logger.Warn("failed to drop product cache", zap.Error(err))
	}
	if err := c.app.categories.InvalidateCache(ctx); err != nil {
		c.app.logger.Warn("failed to drop category cache", zap.Error(err))
	}
	c.print(c.ctrl.Init(ctx))
}

func (c *console) print(st search.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = printState(c.out, st, c.app.opts.jsonOutput)
}

func (c *console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

// readLines feeds scanned lines until in is exhausted or ctx ends.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for ctx.Err() == nil && scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// splitCommand splits a console line into its verb and the rest of the line.
func splitCommand(line string) (string, string) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(verb), strings.TrimSpace(rest)
}
