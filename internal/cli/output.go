package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/search"
)

const (
	tabSpacing      = 2
	maxTitleDisplay = 40
	maxURLDisplay   = 50
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, tabSpacing, ' ', 0)
}

// reportState prints the outcome of a flow. A declined confirmation is not
// an error; every other failure is returned so the exit code reflects it.
func reportState(w io.Writer, s flows.State, done string) error {
	switch st := s.(type) {
	case flows.Success:
		if st.ID != "" {
			fmt.Fprintf(w, "✅ %s (%s)\n", done, st.ID)
		} else {
			fmt.Fprintf(w, "✅ %s\n", done)
		}
		return nil
	case flows.Failed:
		if errors.Is(st.Err, domain.ErrDeclined) {
			fmt.Fprintln(w, st.Message)
			return nil
		}
		for _, f := range st.Fields {
			fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
		}
		return errors.New(st.Message)
	default:
		return fmt.Errorf("unexpected state %s", s)
	}
}

// promptConfirmer asks on out and reads the answer from in. Only "y" and
// "yes" confirm; end of input declines.
func promptConfirmer(in io.Reader, out io.Writer) flows.Confirmer {
	reader := bufio.NewReader(in)
	return flows.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}

func confirmer(yes bool, in io.Reader, out io.Writer) flows.Confirmer {
	if yes {
		return flows.Confirmed(true)
	}
	return promptConfirmer(in, out)
}

// resolveCategory accepts a category ID or a name (ignoring case).
// Unknown values are returned unchanged so the flow reports them.
func resolveCategory(ctx context.Context, c *flows.Categories, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	cats, err := c.Options(ctx)
	if err != nil {
		return "", err
	}
	for _, cat := range cats {
		if cat.ID == ref {
			return cat.ID, nil
		}
	}
	for _, cat := range cats {
		if strings.EqualFold(cat.Name, ref) {
			return cat.ID, nil
		}
	}
	return ref, nil
}

// marked renders highlight segments with matches in brackets.
func marked(segs []search.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString("[" + s.Text + "]")
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printResult(w io.Writer, res search.Result, limit int) {
	if len(res.Hits) == 0 {
		fmt.Fprintf(w, "No bookmarks match %q\n", res.Query)
		return
	}

	hits := res.Hits
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tCATEGORY\tURL")
	for _, h := range hits {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			shorten(marked(h.TitleHighlight), maxTitleDisplay),
			h.Category.Name,
			shorten(h.URL, maxURLDisplay))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d of %d matches\n", len(hits), res.Total)
}
