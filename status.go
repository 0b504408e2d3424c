package waitforapp

// Readiness is the classification of a single probe response.
//
// Readiness is a string type so it reads naturally in logs. Only two values
// are defined: [ReadinessReady] and [ReadinessNotReady].
type Readiness string

const (
	// ReadinessReady means the target answered with a status below 400.
	ReadinessReady Readiness = "ready"

	// ReadinessNotReady means the target answered with a status of 400 or
	// more. It is treated as a temporary failure and retried.
	ReadinessNotReady Readiness = "not_ready"
)

// String returns the string representation of the readiness.
func (r Readiness) String() string {
	return string(r)
}

// ClassifyStatus maps an HTTP status code to a [Readiness].
//
// Any code below 400 counts as ready, including 1xx and 3xx. Readiness means
// "the proxy answered", not "the proxy answered 200".
func ClassifyStatus(statusCode int) Readiness {
	if statusCode >= 400 {
		return ReadinessNotReady
	}
	return ReadinessReady
}
