package dto

// RevalidateRequest is sent by the CMS when content changes.
type RevalidateRequest struct {
	ContentType string `json:"contentType"`
	ContentID   string `json:"contentId,omitempty"`
}

// RevalidateResponse lists the cache tags that were dropped.
type RevalidateResponse struct {
	Tags        []string `json:"tags"`
	Invalidated int      `json:"invalidated"`
}
