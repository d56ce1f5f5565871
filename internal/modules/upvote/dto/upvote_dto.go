package dto

type UpvoteResult struct {
	Success     bool   `json:"success"`
	UpvoteCount int64  `json:"upvoteCount"`
	Message     string `json:"message,omitempty"`
}

type RemoveUpvoteResult struct {
	Success     bool   `json:"success"`
	UpvoteCount int64  `json:"upvoteCount"`
	Removed     bool   `json:"removed"`
	Message     string `json:"message"`
}

type UpvoteStatus struct {
	UpvoteCount int64 `json:"upvoteCount"`
	HasUpvoted  bool  `json:"hasUpvoted"`
}
