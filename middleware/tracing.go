package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// EnrichTrace adds caller and request attributes to the otelgin span. It must run
// after TracingMiddleware and RequestIDMiddleware.
func EnrichTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())

		span.SetAttributes(
			attribute.String("request.id", GetRequestID(c)),
			attribute.String("http.client_ip", c.ClientIP()),
		)

		c.Next()

		// Auth runs per route group, so claims are only known afterwards
		if claims := GetClaims(c); claims != nil {
			span.SetAttributes(
				attribute.String("user.name", claims.Username),
				attribute.String("user.role", claims.Role),
				attribute.String("user.division", claims.Division),
			)
		}
		span.SetAttributes(attribute.Int("http.response.size", c.Writer.Size()))
	}
}
