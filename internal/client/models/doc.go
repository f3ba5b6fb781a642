// Package models defines the client-side view of the content API: testimonial
// and blog records as they travel over the wire, the forms the terminal
// collects before a submission, local validation, and the pure list reducer
// that keeps a view's cached list in step with server responses.
package models
