// Package client contains the FitFlow client's outbound API and local
// database bootstrap.
//
// # Overview
//
//  1. Client is the transport-agnostic contract for the backend: Login,
//     CreatePaymentIntent, ConfirmPayment, Ping.
//  2. HTTPClient implements it over JSON/HTTP. Each request carries a
//     bearer token (after login) and an X-Request-ID.
//  3. InitDatabase and RunMigrations open the local SQLite file and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are *HTTPError,
// whose Message is parsed from a JSON error body or taken from the raw text;
// a 401 also matches ErrUnauthorized. A login rejected by the server is not
// an error: Login returns an AuthResult with OK == false.
package client
