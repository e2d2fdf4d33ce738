package display

import (
	"context"
	"fmt"
	"io"
)

// PageReloader refreshes the admin panel by printing the page address to
// open, including the section to keep in view.
type PageReloader struct {
	out     io.Writer
	pageURL func(fragment string) string
}

// NewPageReloader creates a reloader. pageURL builds the address for a fragment.
func NewPageReloader(out io.Writer, pageURL func(fragment string) string) *PageReloader {
	return &PageReloader{out: out, pageURL: pageURL}
}

func (r *PageReloader) Reload(ctx context.Context, fragment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.out, "Admin panel: %s\n", r.pageURL(fragment))
	return err
}
