package dto

// IssueTokenRequest represents the request for a negotiator token
type IssueTokenRequest struct {
	Author string `json:"author" validate:"required,max=255"`
}

// IssueTokenResponse carries the signed negotiator token
type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
