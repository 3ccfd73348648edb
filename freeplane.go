package click2pptx

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Freeplane's "HTML with image map" export does not put node links on the
// <area> elements. Each area points at an in-page anchor such as
// #FMID_123456FM, and the node's external link is the first http(s)
// anchor that follows <a id="FMID_123456FM"> in the outline below the
// image. A node without a link of its own therefore resolves to the link
// of a later node, exactly as a reader following the page would.

var externalLinkRe = regexp.MustCompile(`(?i)^https?://`)

// freeplaneAnchorRe matches the node anchors Freeplane generates.
var freeplaneAnchorRe = regexp.MustCompile(`^FMID_\d+FM$`)

// IsFreeplaneAnchor reports whether href is a Freeplane node anchor.
func IsFreeplaneAnchor(href string) bool {
	return freeplaneAnchorRe.MatchString(strings.TrimPrefix(href, "#"))
}

// buildAnchorIndex maps every <a id> or <a name> to the first external
// link that follows it in document order. Anchors followed by no external
// link are absent from the index.
func buildAnchorIndex(doc *html.Node) map[string]string {
	index := make(map[string]string)
	var pending []string

	walk(doc, func(n *html.Node) {
		if n.DataAtom != atom.A {
			return
		}
		if href := strings.TrimSpace(attr(n, "href")); externalLinkRe.MatchString(href) {
			for _, id := range pending {
				index[id] = href
			}
			pending = pending[:0]
		}
		for _, key := range []string{"id", "name"} {
			if id := strings.TrimSpace(attr(n, key)); id != "" {
				if _, seen := index[id]; !seen {
					pending = append(pending, id)
				}
			}
		}
	})
	return index
}
