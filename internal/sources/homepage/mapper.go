package homepage

import (
	"errors"
	"net/url"
	"sort"
	"strings"
)

// SourceTag marks every imported bookmark.
const SourceTag = "homepage"

var ErrEmpty = errors.New("no valid links found in homepage config")

// Mapper converts Homepage configs to import groups
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapBookmarks converts a bookmarks.yaml config. The abbreviation, when set,
// becomes a tag next to SourceTag.
func (m *Mapper) MapBookmarks(config BookmarksConfig) ([]Group, error) {
	var c collector
	for _, category := range config {
		for _, categoryName := range sortedKeys(category) {
			for _, bookmarkMap := range category[categoryName] {
				for _, bookmarkName := range sortedKeys(bookmarkMap) {
					entryList := bookmarkMap[bookmarkName]
					// Each bookmark has a list with a single entry
					if len(entryList) == 0 {
						continue
					}
					entry := entryList[0]

					tags := []string{SourceTag}
					if abbr := strings.TrimSpace(entry.Abbr); abbr != "" {
						tags = append(tags, strings.ToLower(abbr))
					}
					c.add(categoryName, bookmarkName, entry.Href, entry.Description, entry.Icon, tags)
				}
			}
		}
	}
	return c.groups()
}

// MapServices converts a services.yaml config: each service group becomes a
// category and each service a bookmark.
func (m *Mapper) MapServices(config ServicesConfig) ([]Group, error) {
	var c collector
	for _, groupMap := range config {
		for _, groupName := range sortedKeys(groupMap) {
			for _, serviceMap := range groupMap[groupName] {
				for _, serviceName := range sortedKeys(serviceMap) {
					props := serviceMap[serviceName]
					c.add(groupName, serviceName, props.Href, props.Description, props.Icon, []string{SourceTag})
				}
			}
		}
	}
	return c.groups()
}

// collector merges groups by case-insensitive name and drops invalid links.
type collector struct {
	out   []Group
	index map[string]int
}

func (c *collector) add(group, title, href, description, icon string, tags []string) {
	group = strings.TrimSpace(group)
	title = strings.TrimSpace(title)
	href = strings.TrimSpace(href)
	if group == "" || title == "" || !validLink(href) {
		return
	}

	if c.index == nil {
		c.index = make(map[string]int)
	}
	key := strings.ToLower(group)
	i, ok := c.index[key]
	if !ok {
		i = len(c.out)
		c.index[key] = i
		c.out = append(c.out, Group{Name: group})
	}

	link := Link{
		Title:       title,
		URL:         href,
		Description: strings.TrimSpace(description),
		Tags:        tags,
	}
	// Homepage icons are usually names resolved by its own CDN, only keep real URLs.
	if icon = strings.TrimSpace(icon); validLink(icon) {
		link.FaviconURL = icon
	}
	c.out[i].Links = append(c.out[i].Links, link)
}

func (c *collector) groups() ([]Group, error) {
	if len(c.out) == 0 {
		return nil, ErrEmpty
	}
	return c.out, nil
}

func validLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
