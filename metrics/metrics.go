// Package metrics registers the counters and histograms registry/handlers
// reports against, namespaced the way the teacher's prometheus.go namespaces
// registry-wide metrics.
package metrics

import (
	"github.com/docker/go-metrics"
)

// NamespacePrefix is the metrics namespace every bao metric is registered
// under.
const NamespacePrefix = "bao"

// HandlersNamespace is the metrics namespace for registry/handlers.
var HandlersNamespace = metrics.NewNamespace(NamespacePrefix, "handlers", nil)

var (
	// Requests counts handled requests by route and outcome, e.g.
	// Requests.WithValues("put", "ok").Inc(1).
	Requests = HandlersNamespace.NewLabeledCounter("requests", "number of requests handled", "route", "outcome")

	// VerificationFailures counts requests rejected because a stored or
	// streamed blob failed bao hash verification.
	VerificationFailures = HandlersNamespace.NewLabeledCounter("verification_failures", "number of requests rejected by hash verification", "route")

	// BlobDuration times how long a PUT or GET request's bao encode/decode
	// pass took, labeled by route, so slow verification shows up the same
	// way the teacher's cache timers surface slow backend calls.
	BlobDuration = HandlersNamespace.NewLabeledTimer("blob_duration_seconds", "time spent encoding or decoding a blob", "route")
)

func init() {
	metrics.Register(HandlersNamespace)
}
