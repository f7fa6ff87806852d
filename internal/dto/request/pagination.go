package request

import "shareit/pkg/utils"

// PageRequest is a from/size window. Offsets snap to whole pages.
type PageRequest struct {
	From int `json:"from" validate:"min=0"`
	Size int `json:"size" validate:"min=1"`
}

func DefaultPage() PageRequest {
	return PageRequest{From: utils.DefaultPageFrom, Size: utils.DefaultPageSize}
}

func (p PageRequest) Offset() int {
	return utils.PageOffset(p.From, p.Size)
}

func (p PageRequest) Limit() int {
	if p.Size < 1 {
		return utils.DefaultPageSize
	}
	return p.Size
}
