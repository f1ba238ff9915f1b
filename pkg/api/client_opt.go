package api

import (
	"net/http"
)

type oauth2Opt struct {
	token string
}

// OAuth2 attaches an Authorization header with the given prefix, e.g.
// OAuth2("Bot", token) or OAuth2("Bearer", token).
func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{token: prefix + " " + token}
}

func (opt *oauth2Opt) Do(client defaultClient, req *http.Request) {
	req.Header.Add("Authorization", opt.token)
}
