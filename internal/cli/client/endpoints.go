package client

const (
	apiV1Prefix = "/v1"

	endpointChat      = apiV1Prefix + "/chat"       // POST - streaming chat
	endpointWebSearch = apiV1Prefix + "/web-search" // POST - standalone search
	endpointPing      = "/ping"                     // GET - connectivity check
)
