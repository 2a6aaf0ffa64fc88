// Package metadata proposes a title and an icon for a bookmark URL.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/utils"
)

// Suggestion may be empty when nothing could be derived.
type Suggestion struct {
	Title      string `json:"title"`
	FaviconURL string `json:"favicon_url,omitempty"`
}

// FromURL derives a title from the host name: "https://www.github.com/x"
// gives "Github.com". Unparseable input gives an empty suggestion.
func FromURL(raw string) Suggestion {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return Suggestion{}
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	r, size := utf8.DecodeRuneInString(host)
	return Suggestion{Title: string(unicode.ToUpper(r)) + host[size:]}
}

// maxPageBytes bounds how much of a page is parsed.
const maxPageBytes = 1 << 20

// Client enriches FromURL with the page's <title> and icon link when remote
// fetching is enabled.
type Client struct {
	http    *http.Client
	log     logger.Logger
	enabled bool
}

func NewClient(enabled bool, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		log:     log,
		enabled: enabled,
	}
}

// Suggest never fails: fetch errors fall back to the host-name suggestion.
func (c *Client) Suggest(ctx context.Context, raw string) Suggestion {
	base := FromURL(raw)
	if !c.enabled || base.Title == "" {
		return base
	}

	page, err := c.fetch(ctx, strings.TrimSpace(raw))
	if err != nil {
		c.log.Debug("metadata fetch failed", logger.String("url", raw), logger.Error(err))
		return base
	}
	if page.Title != "" {
		base.Title = page.Title
	}
	base.FaviconURL = page.FaviconURL
	return base
}

func (c *Client) fetch(ctx context.Context, raw string) (Suggestion, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Suggestion{}, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Suggestion{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return Suggestion{}, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return Suggestion{}, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Suggestion{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Suggestion{}, err
	}
	return parse(doc, resp.Request.URL), nil
}

func parse(doc *goquery.Document, base *url.URL) Suggestion {
	s := Suggestion{Title: strings.Join(strings.Fields(doc.Find("head title").First().Text()), " ")}

	icon := ""
	doc.Find("link[rel]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rel := strings.ToLower(sel.AttrOr("rel", ""))
		for _, r := range strings.Fields(rel) {
			if r == "icon" || r == "apple-touch-icon" {
				icon = strings.TrimSpace(sel.AttrOr("href", ""))
				return false
			}
		}
		return true
	})

	if icon == "" {
		icon = "/favicon.ico"
	}
	if ref, err := url.Parse(icon); err == nil {
		s.FaviconURL = base.ResolveReference(ref).String()
	}
	return s
}
