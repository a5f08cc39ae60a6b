// Command tinybrowser is a smoke-test front end for the document pipeline:
// it navigates to a URL, runs the full HTML/CSS/JS pipeline, and prints the
// resulting display items to stdout. It is not the terminal UI the original
// ships (ratatui/crossterm appear nowhere in the retrieved pack) — it is a
// minimal driver that exercises navigator.Navigator the way cmd/justhtml
// exercises the teacher's parser.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kenjisato/tinybrowser/display"
	"github.com/kenjisato/tinybrowser/navigator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <url>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch and render a page's display items to stdout.\n")
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing url")
	}

	nav := navigator.New()
	if err := nav.Navigate(args[0]); err != nil {
		return err
	}

	render(nav.Page().Items)
	return nil
}

// render prints each display item as one line, the way a CUI front end
// would lay out a column of text (see browser/ui/cui/src/app.rs, which this
// is a non-interactive stand-in for).
func render(items []display.Item) {
	for _, it := range items {
		switch it.Kind {
		case display.KindText:
			line := it.Text
			if it.Style.TextDecoration == display.DecorationUnderline {
				line = "[" + line + "]"
			}
			switch it.Style.FontSize {
			case display.FontXLarge:
				line = "# " + line
			case display.FontLarge:
				line = "## " + line
			}
			fmt.Println(line)
		case display.KindRect:
			fmt.Printf("<rect %dx%d at %d,%d>\n", it.Width, it.Height, it.Point.X, it.Point.Y)
		}
	}
}
