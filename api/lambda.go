package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
)

// headerInvocation carries the key of the Lambda invocation context across
// the net/http to fasthttp conversion, which drops r.Context().
const headerInvocation = "X-Lambda-Invocation"

// invocations holds the contexts of in-flight Lambda invocations
type invocations struct {
	m sync.Map
}

func (i *invocations) add(ctx context.Context) (string, func()) {
	key := uuid.New().String()
	i.m.Store(key, ctx)
	return key, func() { i.m.Delete(key) }
}

func (i *invocations) get(key string) (context.Context, bool) {
	if key == "" {
		return nil, false
	}
	v, ok := i.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(context.Context), true
}

// invocationContext replaces the request context with the Lambda invocation
// context so its deadline reaches the service. Unknown keys are ignored.
func (s *Server) invocationContext() fiber.Handler {
	return func(c fiber.Ctx) error {
		if ctx, ok := s.invocations.get(c.Get(headerInvocation)); ok {
			c.SetContext(ctx)
		}
		return c.Next()
	}
}

// LambdaHandler adapts the fiber app to API Gateway proxy events
func (s *Server) LambdaHandler() func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	handler := adaptor.FiberApp(s.app)

	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := newHTTPRequest(ctx, event)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		key, release := s.invocations.add(ctx)
		defer release()
		req.Header.Set(headerInvocation, key)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		headers := make(map[string]string, len(rec.Header()))
		multi := make(map[string][]string, len(rec.Header()))
		for name, values := range rec.Header() {
			if len(values) > 0 {
				headers[name] = values[0]
			}
			multi[name] = values
		}

		return events.APIGatewayProxyResponse{
			StatusCode:        rec.Code,
			Headers:           headers,
			MultiValueHeaders: multi,
			Body:              rec.Body.String(),
		}, nil
	}
}

func newHTTPRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		body = decoded
	}

	query := url.Values{}
	for name, values := range event.MultiValueQueryStringParameters {
		for _, v := range values {
			query.Add(name, v)
		}
	}
	for name, v := range event.QueryStringParameters {
		if !query.Has(name) {
			query.Set(name, v)
		}
	}

	target := (&url.URL{Path: event.Path, RawQuery: query.Encode()}).String()
	req, err := http.NewRequestWithContext(ctx, event.HTTPMethod, target, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	// the adaptor routes on RequestURI, which only server requests carry
	req.RequestURI = target

	for name, values := range event.MultiValueHeaders {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	for name, v := range event.Headers {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, v)
		}
	}
	if id := event.RequestContext.RequestID; id != "" && req.Header.Get(headerRequestID) == "" {
		req.Header.Set(headerRequestID, id)
	}

	return req, nil
}
