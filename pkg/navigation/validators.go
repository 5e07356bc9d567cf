package navigation

import (
	"github.com/readerapp/reader/pkg/route"
	"github.com/segmentio/encoding/json"
)

type NavigatePayload struct {
	Route string `json:"route" validate:"required,route"`
}

type ActionPayload struct {
	Action  string          `json:"action" mod:"trim" validate:"required,max=32"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StateResponse is what every navigation endpoint answers with: where the
// reader is, how they got there, and the current screen's loaded resource.
type StateResponse struct {
	Route       string            `json:"route"`
	Destination route.Destination `json:"destination"`
	Parameter   *string           `json:"parameter,omitempty"`
	Depth       int               `json:"depth"`
	BackStack   []string          `json:"back_stack"`
	Exited      bool              `json:"exited"`
	View        any               `json:"view,omitempty"`
}
