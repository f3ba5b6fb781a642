// Package client is the HTTP adapter between the terminal client and the
// wastecms content API, plus the bootstrap of the client's local sqlite file.
//
// # Overview
//
//  1. APIClient is the transport contract, one method per API endpoint.
//  2. HTTPClient implements it over net/http. Multipart bodies carry the
//     testimonial and blog forms (the image part only when an image was
//     picked), JSON carries login and status updates.
//  3. The bearer token is read from a TokenSource (the session) and attached
//     to protected endpoints only: admin testimonial calls and blog
//     create/update/delete. Public reads, public submission and login never
//     carry it.
//  4. InitDatabase/RunMigrations open the sqlite file and apply the embedded
//     goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Every non-2xx response becomes a
// *StatusError; a 401 additionally matches common.ErrorUnauthorized and a 404
// matches common.ErrorNotFound with errors.Is. The adapter never retries.
package client
