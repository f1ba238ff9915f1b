package api

import (
	"fmt"
	"net/url"
	"strings"
)

func formatPath(path string, args ...any) string {
	return fmt.Sprintf(path, args...)
}

func PercentEncode(s string) string {
	s = url.QueryEscape(s)
	return strings.ReplaceAll(s, "+", "%20")
}
