package detections

import (
	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/detections"
)

// largest image accepted for analysis
const maxImageSize = 10 << 20

// DetectionsListResponse wraps a list of detections with list metadata
type DetectionsListResponse struct {
	Detections []detections.Detection `json:"detections"`
	Pagination pagination.Meta        `json:"pagination"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
