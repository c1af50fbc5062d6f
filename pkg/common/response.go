package common

// APIResponse is the success envelope every rate-engine endpoint returns:
// the request's trace id plus a named payload.
type APIResponse struct {
	TraceID string                 `json:"traceId"` // unique identifier for the API request
	Data    map[string]interface{} `json:"data"`
}

// Wrap builds the envelope around a single named payload.
func Wrap(traceID, key string, payload interface{}) APIResponse {
	return APIResponse{
		TraceID: traceID,
		Data:    map[string]interface{}{key: payload},
	}
}
