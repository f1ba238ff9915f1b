package discord

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/puzzup/backend/pkg/api"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	punctuationRe = regexp.MustCompile(`[#!,()'":?<>{}|[\]@$%^&*=+/\\;.]`)
	hyphenRunRe   = regexp.MustCompile(`-+`)
)

// SanitizeChannelName is a rough approximation of Discord's channel name
// sanitization: lowercase, whitespace runs become one hyphen, certain
// punctuation is removed, and hyphen runs are collapsed. Two names sanitize
// equal exactly when a rename would be cosmetic, which is how the diff
// decides whether to push a name update.
func SanitizeChannelName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = whitespaceRe.ReplaceAllString(name, "-")
	name = punctuationRe.ReplaceAllString(name, "")
	name = hyphenRunRe.ReplaceAllString(name, "-")
	return name
}

// Delta returns the minimal patch between two channel states: "id" plus the
// value of new for every field where new differs from old. The name field is
// compared through SanitizeChannelName; everything else by wire-value
// equality. A result holding only "id" means nothing changed.
func Delta(old, new *TextChannel) api.JSON {
	oldWire := old.ToWire()
	newWire := new.ToWire()

	result := api.JSON{"id": new.ID}
	for field, value := range newWire {
		switch field {
		case "id":
			continue
		case "name":
			if SanitizeChannelName(old.Name) != SanitizeChannelName(new.Name) {
				result[field] = value
			}
		default:
			if !reflect.DeepEqual(oldWire[field], value) {
				result[field] = value
			}
		}
	}

	return result
}
