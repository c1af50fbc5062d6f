package pkg

const (
	HeaderTraceId   string = "X-Trace-Id"
	HeaderRequestId string = "X-Request-Id"
)

const (
	TraceId   string = "trace_id"
	RequestId string = "request_id"
)

// Priority selects the recommendation strategy when shopping rates.
type Priority string

const (
	PriorityCost        Priority = "cost"
	PrioritySpeed       Priority = "speed"
	PriorityReliability Priority = "reliability"
	PrioritySmart       Priority = "smart"
)

// Valid reports whether p names a known strategy. Empty means "use default".
func (p Priority) Valid() bool {
	switch p {
	case PriorityCost, PrioritySpeed, PriorityReliability, PrioritySmart, "":
		return true
	}
	return false
}
