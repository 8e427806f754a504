package community

import (
	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/community"
)

// PostsListResponse wraps a list of posts with list metadata
type PostsListResponse struct {
	Posts      []community.Post `json:"posts"`
	Pagination pagination.Meta  `json:"pagination"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
