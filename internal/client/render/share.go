package render

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/client/models"
)

// ShareLink is a named share target for a blog post.
type ShareLink struct {
	Network string
	URL     string
}

// PostURL is the public page of a post under siteURL.
func PostURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + "/blog/" + url.PathEscape(slug)
}

// ShareLinks returns the LinkedIn, Twitter and WhatsApp links for b.
func ShareLinks(siteURL string, b models.Blog) []ShareLink {
	page := PostURL(siteURL, b.Slug)
	return []ShareLink{
		{
			Network: "LinkedIn",
			URL:     "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(page),
		},
		{
			Network: "Twitter",
			URL:     "https://twitter.com/intent/tweet?url=" + url.QueryEscape(page) + "&text=" + url.QueryEscape(b.Title),
		},
		{
			Network: "WhatsApp",
			URL:     "https://wa.me/?text=" + url.QueryEscape(b.Title+" "+page),
		},
	}
}
