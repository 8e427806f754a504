package tips

import (
	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/tips"
)

// TipsListResponse wraps a list of tips with list metadata
type TipsListResponse struct {
	Tips       []tips.Tip      `json:"tips"`
	Pagination pagination.Meta `json:"pagination"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
