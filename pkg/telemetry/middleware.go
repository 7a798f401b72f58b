package telemetry

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TraceIDHeader carries the trace id back to the caller
	TraceIDHeader = "X-Trace-ID"

	// UserIDKey matches the gin context key the auth middleware sets
	UserIDKey = "user_id"

	// RequestIDKey matches the gin context key the request id middleware sets
	RequestIDKey = "request_id"

	apiPrefix = "/api/v1/"
)

// untracedPaths are probe and scrape endpoints
var untracedPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// TracingMiddleware starts a server span per API request, named after the
// matched route and tagged with the entity the route serves
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	tracer := otel.Tracer(serviceName + "/http")
	propagator := otel.GetTextMapPropagator()

	return func(c *gin.Context) {
		if untracedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		attrs := []attribute.KeyValue{
			semconv.HTTPMethod(c.Request.Method),
			semconv.HTTPRoute(route),
			attribute.String("url.path", c.Request.URL.Path),
			attribute.String("booking.entity", entityFromRoute(route)),
			semconv.UserAgentOriginal(c.Request.UserAgent()),
			attribute.String("http.client_ip", c.ClientIP()),
		}
		if requestID, ok := c.Get(RequestIDKey); ok {
			attrs = append(attrs, attribute.String("request.id", fmt.Sprint(requestID)))
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		if span.SpanContext().HasTraceID() {
			c.Header(TraceIDHeader, span.SpanContext().TraceID().String())
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPStatusCode(status))
		if userID, ok := c.Get(UserIDKey); ok {
			span.SetAttributes(attribute.String("enduser.id", fmt.Sprint(userID)))
		}

		// Domain rejections are recorded as events, only 5xx fail the span
		if len(c.Errors) > 0 {
			span.AddEvent("request.error", trace.WithAttributes(attribute.String("error.message", c.Errors.String())))
		}
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
		}
	}
}

// entityFromRoute returns the resource segment of an API route,
// "booking" for /api/v1/booking/:id
func entityFromRoute(route string) string {
	rest, ok := strings.CutPrefix(route, apiPrefix)
	if !ok {
		return ""
	}
	entity, _, _ := strings.Cut(rest, "/")
	return entity
}
