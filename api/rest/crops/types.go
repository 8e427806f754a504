package crops

import (
	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/crops"
)

// CropsListResponse wraps a list of crops with list metadata
type CropsListResponse struct {
	Crops      []crops.Crop    `json:"crops"`
	Pagination pagination.Meta `json:"pagination"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
