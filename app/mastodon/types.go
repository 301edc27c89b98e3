package mastodon

// Wire types for the Mastodon v1 timeline API. Only the fields the
// normalizer consumes are declared; everything else in the upstream payload
// is ignored.

type Status struct {
	ID               string            `json:"id"`
	CreatedAt        string            `json:"created_at"`
	Content          string            `json:"content"`
	URL              string            `json:"url"`
	URI              string            `json:"uri"`
	Account          Account           `json:"account"`
	Reblog           *Status           `json:"reblog"`
	Quote            *Quote            `json:"quote"`
	MediaAttachments []MediaAttachment `json:"media_attachments"`
}

type Account struct {
	DisplayName string `json:"display_name"`
	Acct        string `json:"acct"`
	Username    string `json:"username"`
}

// Quote is the Mastodon 4.4+ quote-post wrapper. Older instances simply never
// send the field.
type Quote struct {
	State        string  `json:"state"`
	QuotedStatus *Status `json:"quoted_status"`
}

type MediaAttachment struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	RemoteURL   string `json:"remote_url"`
	PreviewURL  string `json:"preview_url"`
	Description string `json:"description"`
}
