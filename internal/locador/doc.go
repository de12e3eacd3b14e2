// Package locador provides an HTTP client for the Locador Financial REST API.
//
// # Overview
//
// This package defines the API client the console uses for every backend call:
// authentication, the dashboard summary, and one CRUD collection per resource
// (bancos, clientes, contas, empresas, favorecidos, lancamentos). It handles
// HTTP communication, JSON serialization, bearer-token attachment and the
// backend's error payloads.
//
// # Architecture
//
//   - client.go: Client, transport setup, request/response handling, APIError
//   - auth.go: login endpoint, token wrapping, session expiry
//   - resource.go: generic Resource[R, C, U, F] and the per-resource constructors
//   - types.go: data structures mirroring the API schema and list filters
//
// # Client Usage
//
//	client, err := locador.NewClient(locador.Config{BaseURL: "127.0.0.1:8000"})
//	if err != nil {
//		return err
//	}
//	if _, err := client.Login(ctx, locador.Credentials{Username: "ana", Password: pw}); err != nil {
//		return err
//	}
//
//	bancos, err := client.Bancos().List(ctx, locador.ActiveFilter{AtivosApenas: true}, 0, 50)
//
// # API Endpoints
//
// Every collection exposes the same five verbs:
//
//   - GET /{resource}?skip=&limit=&<filters>
//   - GET /{resource}/{id}
//   - POST /{resource}
//   - PUT /{resource}/{id}
//   - DELETE /{resource}/{id}
//
// Plus PATCH /lancamentos/{id}/confirmar, GET /dashboard/resumo and
// POST /auth/login (form-encoded username/password).
//
// # Authentication
//
// The session token is attached by an oauth2.Transport whose source is the
// client's current token. Requests made before login fail with ErrUnauthorized
// without reaching the network. When the access token is a JWT, its exp claim
// is read (unverified) so the UI can show when the session ends; validation and
// refresh remain the backend's job.
//
// # Error Handling
//
// Responses with status >= 400 become *APIError, carrying the backend's
// `detail` message (a string, or a list of validation messages joined with
// "; "). errors.Is(err, ErrUnauthorized) and errors.Is(err, ErrNotFound) work
// through the wrapping added by each Resource method.
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "updating banco 5: api PUT /bancos/5 returned status 404: not found"
//   - "decode response: unexpected end of JSON input"
//
// # Thread Safety
//
// The Client is safe for concurrent use. Token swaps are guarded by a mutex and
// the underlying http.Client handles connection pooling.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching (the resource slices own list state)
//   - No retries (callers decide whether to re-fetch)
//   - No request sequencing (the resource slices discard stale list results)
package locador
