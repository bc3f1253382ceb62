package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/instrumentation"
	"github.com/giantswarm/mcp-eks/internal/server/middleware"
)

const (
	// QueryEndpointPath is the REST query endpoint served alongside the MCP
	// endpoint on HTTP transports.
	QueryEndpointPath = "/mcp/v1/query"

	// maxQueryBodySize bounds the request body of a query call.
	maxQueryBodySize = 1 << 20

	// DefaultReadHeaderTimeout is the default timeout for reading request headers
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout is the default timeout for writing responses (increased for long-running MCP operations)
	DefaultWriteTimeout = 120 * time.Second

	// DefaultIdleTimeout is the default idle timeout for keepalive connections
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is the default timeout for graceful server shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

// QueryRequest is the body of a query API call: one operation name from the
// catalog plus its parameters.
type QueryRequest struct {
	Operation  string        `json:"operation"`
	Parameters broker.Params `json:"parameters,omitempty"`
}

// QueryAPI serves the REST query endpoint. It accepts the same operations as
// the MCP tools and returns the broker envelope verbatim, so scripted callers
// can use the server without an MCP client.
type QueryAPI struct {
	serverContext *ServerContext
}

// NewQueryAPI creates a query API bound to the given server context.
func NewQueryAPI(sc *ServerContext) *QueryAPI {
	return &QueryAPI{serverContext: sc}
}

// Handler returns the HTTP handler for the query endpoint. When the server
// is configured with an API key, requests must present it in the X-API-Key
// header.
func (q *QueryAPI) Handler() http.Handler {
	handler := http.HandlerFunc(q.handleQuery)
	return middleware.APIKey(q.serverContext.Config().APIKey)(handler)
}

func (q *QueryAPI) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeEnvelope(w, http.StatusMethodNotAllowed,
			broker.Failuref(broker.CodeUnsupportedOperation, "method %s not allowed, use POST", r.Method))
		return
	}

	if q.serverContext.IsShutdown() {
		writeEnvelope(w, http.StatusServiceUnavailable,
			&broker.Envelope{Status: "error", Error: ErrServerShutdown.Error()})
		return
	}

	var req QueryRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest,
			broker.Failuref(broker.CodeMissingParameter, "invalid request body: %v", err))
		return
	}

	envelope := q.dispatch(r, &req)
	writeEnvelope(w, http.StatusOK, envelope)
}

// dispatch runs one operation with the same observability the MCP tools get:
// a tool span, an operation metric, and an audit record.
func (q *QueryAPI) dispatch(r *http.Request, req *QueryRequest) *broker.Envelope {
	sc := q.serverContext

	ctx, span := instrumentation.StartToolSpan(r.Context(), req.Operation)
	defer span.End()

	region := paramString(req.Parameters, "region")
	if region == "" {
		region = sc.Config().DefaultRegion
	}
	cluster := paramString(req.Parameters, "cluster_name")
	namespace := paramString(req.Parameters, "namespace")
	resourceType, resourceName := resourceFromParams(req.Parameters)

	invocation := instrumentation.NewToolInvocation(req.Operation).
		WithCluster(cluster).
		WithRegion(region).
		WithResource(namespace, resourceType, resourceName).
		WithSpanContext(ctx)

	envelope := sc.Broker().Dispatch(ctx, req.Operation, req.Parameters)

	if envelope.IsError() {
		err := errors.New(envelope.Error)
		invocation.CompleteWithError(err)
		instrumentation.SetSpanError(span, err)
	} else {
		invocation.CompleteSuccess()
		instrumentation.SetSpanSuccess(span)
	}

	sc.Metrics().RecordOperation(ctx, req.Operation, cluster, region, namespace,
		invocation.Status(), invocation.Duration)
	sc.AuditLogger().LogToolInvocation(invocation)

	return envelope
}

// writeEnvelope writes a broker envelope as the JSON response body.
func writeEnvelope(w http.ResponseWriter, statusCode int, envelope *broker.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(envelope)
}

// paramString reads a string parameter from the raw argument bag.
func paramString(params broker.Params, key string) string {
	if value, ok := params[key].(string); ok {
		return value
	}
	return ""
}

// resourceFromParams derives the audit resource type and name from the
// request parameters.
func resourceFromParams(params broker.Params) (resourceType, resourceName string) {
	for key, rt := range map[string]string{
		"pod_name":        "pod",
		"deployment_name": "deployment",
		"nodegroup_name":  "nodegroup",
	} {
		if name := paramString(params, key); name != "" {
			return rt, name
		}
	}
	return "", ""
}
