package websocket

// Frame is the JSON document written to push-channel clients.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// ClientEvent is the payload of the client lifecycle topics.
type ClientEvent struct {
	ClientID   string `json:"clientId"`
	RemoteAddr string `json:"remoteAddr,omitempty"`
	// Clients is the size of the fan-out set after the change.
	Clients int `json:"clients"`
}
