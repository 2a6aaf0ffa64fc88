package homepage

// BookmarksConfig is a Homepage bookmarks.yaml:
//
//	- Developer:
//	    - Github:
//	        - abbr: GH
//	          href: https://github.com/
type BookmarksConfig []BookmarkCategory

// BookmarkCategory maps a category name to its bookmarks. Each bookmark name
// holds a one-element list of properties.
type BookmarkCategory map[string][]map[string][]BookmarkEntry

type BookmarkEntry struct {
	Href        string `yaml:"href"`
	Abbr        string `yaml:"abbr"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

// ServicesConfig is a Homepage services.yaml. Same nesting as bookmarks but
// each service holds its properties directly. Widgets and monitors are ignored.
type ServicesConfig []map[string][]map[string]ServiceProps

type ServiceProps struct {
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Group is one category worth of links, in file order.
type Group struct {
	Name  string
	Links []Link
}

// Link is a bookmark ready to be imported.
type Link struct {
	Title       string
	URL         string
	Description string
	FaviconURL  string
	Tags        []string
}
