// Package render turns API records into terminal text.
//
// Blog bodies are stored as HTML. They are stripped to plain text with a
// bluemonday strict policy for display, and Markdown typed in the terminal is
// converted to HTML with goldmark before it is sent to the API.
package render
