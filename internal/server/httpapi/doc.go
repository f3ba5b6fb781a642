// Package httpapi exposes the content services over the JSON/multipart REST
// API consumed by the site and the admin client.
package httpapi
