package auth

import gmailapi "google.golang.org/api/gmail/v1"

// DefaultScopes defines the OAuth2 scopes the CLI requests. Search and
// label listing are read-only operations, so the readonly scope is all
// we ask for.
var DefaultScopes = []string{
	gmailapi.GmailReadonlyScope,
}
