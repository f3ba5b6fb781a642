package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command is the signature of every REPL command handler.
type command func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Testimonials(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	Previous(ctx context.Context, args []string) error
	GoTo(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error
	Blogs(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Blog(ctx context.Context, args []string) error

	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
	ShowTestimonial(ctx context.Context, args []string) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	DeleteTestimonial(ctx context.Context, args []string) error
	NewBlog(ctx context.Context, args []string) error
	EditBlog(ctx context.Context, args []string) error
	DeleteBlog(ctx context.Context, args []string) error
}

const (
	publicHelp = "Available commands: testimonials, next, prev, goto <n>, submit, blogs [words] [category=<name>], categories, blog <slug>, login, exit"
	adminHelp  = "Admin commands: dashboard, testimonial <id>, approve <id>, reject <id>, rmtestimonial <id>, newblog, editblog <id>, rmblog <id>, logout"
)

// commands maps command words (and their short aliases) to handlers.
func commands(a execIface) map[string]command {
	return map[string]command{
		"testimonials":  a.Testimonials,
		"t":             a.Testimonials,
		"next":          a.Next,
		"n":             a.Next,
		"prev":          a.Previous,
		"p":             a.Previous,
		"goto":          a.GoTo,
		"submit":        a.Submit,
		"blogs":         a.Blogs,
		"b":             a.Blogs,
		"categories":    a.Categories,
		"blog":          a.Blog,
		"login":         a.Login,
		"logout":        a.Logout,
		"dashboard":     a.Dashboard,
		"d":             a.Dashboard,
		"testimonial":   a.ShowTestimonial,
		"approve":       a.Approve,
		"reject":        a.Reject,
		"rmtestimonial": a.DeleteTestimonial,
		"newblog":       a.NewBlog,
		"editblog":      a.EditBlog,
		"rmblog":        a.DeleteBlog,
	}
}

// runREPL starts a simple read–eval–print loop for the wastecms client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF, on
// context cancellation or when the user types "exit" or "quit".
//
// The same reader is used by the command handlers for their prompts, so the
// REPL never reads ahead of them.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own notification line. This keeps the REPL loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	table := commands(a)

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("wcms %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "h":
			printlnFn(publicHelp)
			if a.isLoggedIn() {
				printlnFn(adminHelp)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			handler, ok := table[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				break
			}
			_ = handler(ctx, args)
		}

		if err != nil {
			return
		}
	}
}
