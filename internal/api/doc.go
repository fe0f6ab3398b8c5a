// Package api provides the HTTP client for the Krishi Sahayak backend.
//
// # Overview
//
// The client wraps every REST endpoint the terminal app consumes: market
// prices and series, the crop guide, disease detection uploads, the cost
// calculator, the chatbot (text and speech), translation, weather, and the
// auth/profile surface.
//
// # Client Usage
//
//	client, err := api.NewClient("http://localhost:5000/api",
//		api.WithTokenSource(authManager),
//		api.WithUnauthorizedHandler(forceLogout),
//	)
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a sahayak User-Agent
//   - Carry "Authorization: Bearer <token>" while the token source has one
//   - Have a 30-second timeout; disease detection gets 60 seconds because
//     image analysis is slow
//
// # Error Handling
//
// Failures surface as *Error. Status is the HTTP status, or zero for
// transport errors that never produced a response. UserMessage maps the
// taxonomy to display text (400 invalid data, 401 authentication required,
// 403 access denied, 404 not found, 429 rate limited, 500 server error,
// network errors to a connectivity hint). A 401 additionally invokes the
// registered unauthorized handler so the app can force a logout; the error
// is still returned to the caller.
//
// # Connectivity
//
// Ping is the probe used by the connectivity watcher. Any HTTP response,
// including an error status, counts as reachable: the probe answers "is the
// network up", not "is the backend healthy".
//
// # Design Rationale
//
// The client performs no caching, no retries, and no fallback data; those
// policies belong to the service layers (see internal/market) so each page
// can choose its own degradation story.
package api
