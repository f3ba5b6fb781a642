// Package services contains the server-side business logic of the content
// API: admin authentication, testimonial submission and moderation, and blog
// post management. Services talk to storage only through the
// RepositoryManager and the ImageStore.
package services
