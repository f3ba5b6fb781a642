// Package models holds the server-side entities of the content API and the
// input forms its handlers decode from requests.
package models
