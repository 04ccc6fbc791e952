package server

import "github.com/vango-dev/vnp/pkg/seo"

// Frame types.
const (
	FrameNavigate = "navigate"
	FrameLeaving  = "leaving"
	FrameSwap     = "swap"
	FrameMeta     = "meta"
	FrameLocation = "location"
	FrameScroll   = "scroll"
)

// Frame is a JSON message on the session socket.
type Frame struct {
	Type    string   `json:"type"`
	Path    string   `json:"path,omitempty"`
	Leaving *bool    `json:"leaving,omitempty"`
	HTML    string   `json:"html,omitempty"`
	Meta    seo.Meta `json:"meta,omitempty"`
}

func leavingFrame(v bool) Frame {
	return Frame{Type: FrameLeaving, Leaving: &v}
}
