// Package cli provides the interactive wastecms terminal client.
//
// It wires configuration, the local session store, the content API adapter
// and the view services into a REPL. Visitors can browse approved
// testimonials in an auto-advancing carousel, submit a testimonial and read
// the blog. Signed-in admins moderate testimonials and manage blog posts.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
