package library

import (
	"strings"

	"github.com/nbd-wtf/go-nostr"
)

// ParseTags turns command line values such as "t,nostr" or "imeta,url https://x/y.jpg,m image/jpeg"
// into nostr tags. Empty values are skipped.
func ParseTags(values []string) nostr.Tags {
	tags := nostr.Tags{}
	for _, v := range values {
		if len(strings.TrimSpace(v)) == 0 {
			continue
		}
		tags = append(tags, nostr.Tag(strings.Split(v, ",")))
	}
	return tags
}
