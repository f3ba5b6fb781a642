package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/client/render"
	"github.com/dmitrijs2005/wastecms/internal/client/services"
	"github.com/dmitrijs2005/wastecms/internal/client/session"
)

// Dashboard opens the admin view: testimonials and blog posts are fetched at
// the same time and printed as they stand. One list failing to load does not
// hide the other.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	a.leaveViews()

	d := services.NewDashboard(context.WithoutCancel(ctx), a.api, a.session, a.log)
	a.mu.Lock()
	a.dash = d
	a.mu.Unlock()

	a.printf("%s\n", render.LoadingText)
	errs, err := d.Load(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	if a.currentDashboard() != d {
		// the session sent us to login while loading
		return nil
	}
	a.setView(ViewDashboard)

	a.printTestimonials(d, errs.Testimonials)
	a.printBlogs(d, errs.Blogs)
	return nil
}

func (a *App) currentDashboard() *services.Dashboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dash
}

// dashboard returns the open dashboard, opening it when needed.
func (a *App) dashboard(ctx context.Context) (*services.Dashboard, error) {
	if d := a.currentDashboard(); d != nil {
		return d, nil
	}
	if err := a.Dashboard(ctx, nil); err != nil {
		return nil, err
	}
	if d := a.currentDashboard(); d != nil {
		return d, nil
	}
	return nil, session.ErrNoSession
}

func (a *App) printTestimonials(d *services.Dashboard, loadErr error) {
	list := d.Testimonials.Testimonials()
	a.printf("Testimonials (%d)\n", len(list))
	if loadErr != nil {
		a.report(loadErr)
	}
	for _, t := range list {
		a.render.ModerationRow(t, d.Testimonials.Pending(t.ID))
	}
}

func (a *App) printBlogs(d *services.Dashboard, loadErr error) {
	list := d.Blogs.Blogs()
	a.printf("Blog posts (%d)\n", len(list))
	if loadErr != nil {
		a.report(loadErr)
	}
	for _, b := range list {
		a.render.AdminBlogRow(b, d.Blogs.Pending(b.ID))
	}
}

// Approve and Reject move a testimonial to that status.
func (a *App) Approve(ctx context.Context, args []string) error {
	return a.moderate(ctx, args, models.ActionApprove)
}

func (a *App) Reject(ctx context.Context, args []string) error {
	return a.moderate(ctx, args, models.ActionReject)
}

func (a *App) moderate(ctx context.Context, args []string, action models.Action) error {
	if len(args) == 0 {
		a.printf("Usage: %s <id>\n", action)
		return nil
	}
	d, err := a.dashboard(ctx)
	if err != nil {
		return err
	}

	id := args[0]
	t, ok := findTestimonial(d, id)
	if !ok {
		a.printf("No testimonial %s in the list.\n", id)
		return nil
	}
	if !slices.Contains(models.Actions(t), action) {
		a.printf("Testimonial %s is already %s.\n", id, t.Status)
		return nil
	}

	target, _ := action.Target()
	updated, err := d.Testimonials.SetStatus(ctx, id, target)
	if err != nil {
		a.report(err)
		return err
	}
	a.render.ModerationRow(updated, false)
	return nil
}

// DeleteTestimonial removes a testimonial after confirmation.
func (a *App) DeleteTestimonial(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: rmtestimonial <id>\n")
		return nil
	}
	d, err := a.dashboard(ctx)
	if err != nil {
		return err
	}
	if err := d.Testimonials.Delete(ctx, args[0], a.confirm); err != nil {
		a.report(err)
		return err
	}
	a.printf("Testimonial deleted.\n")
	return nil
}

// ShowTestimonial prints one testimonial from the moderation list.
func (a *App) ShowTestimonial(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: testimonial <id>\n")
		return nil
	}
	d, err := a.dashboard(ctx)
	if err != nil {
		return err
	}
	t, ok := findTestimonial(d, args[0])
	if !ok {
		a.printf("No testimonial %s in the list.\n", args[0])
		return nil
	}
	a.render.Testimonial(t)
	return nil
}

func findTestimonial(d *services.Dashboard, id string) (models.Testimonial, bool) {
	for _, t := range d.Testimonials.Testimonials() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Testimonial{}, false
}

// NewBlog creates a post from answers typed in the terminal. The body is
// Markdown and is converted to HTML before it is sent.
func (a *App) NewBlog(ctx context.Context, _ []string) error {
	d, err := a.dashboard(ctx)
	if err != nil {
		return err
	}

	form, image, err := a.readBlogForm(models.BlogForm{}, false)
	if err != nil {
		a.report(err)
		return err
	}

	created, err := d.Blogs.Create(ctx, form, image)
	if err != nil {
		a.report(err)
		return err
	}
	a.printf("Blog created: /blog/%s\n", created.Slug)
	return nil
}

// EditBlog edits the post id. Empty answers keep the current values, and no
// new image keeps the stored one.
func (a *App) EditBlog(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: editblog <id>\n")
		return nil
	}
	d, err := a.dashboard(ctx)
	if err != nil {
		return err
	}

	id := args[0]
	current, err := d.Blogs.EditForm(id)
	if err != nil {
		a.printf("No blog %s in the list.\n", id)
		return err
	}

	form, image, err := a.readBlogForm(current, true)
	if err != nil {
		a.report(err)
		return err
	}

	updated, err := d.Blogs.Update(ctx, id, form, image)
	if err != nil {
		a.report(err)
		return err
	}
	a.printf("Blog updated: /blog/%s\n", updated.Slug)
	return nil
}

// DeleteBlog removes a post after confirmation.
func (a *App) DeleteBlog(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: rmblog <id>\n")
		return nil
	}
	d, err := a.dashboard(ctx)
	if err != nil {
		return err
	}
	if err := d.Blogs.Delete(ctx, args[0], a.confirm); err != nil {
		a.report(err)
		return err
	}
	a.printf("Blog deleted.\n")
	return nil
}

// readBlogForm prompts for every field of f. When editing, an empty answer
// keeps the value shown in brackets.
func (a *App) readBlogForm(f models.BlogForm, editing bool) (models.BlogForm, *models.Upload, error) {
	ask := func(label string, dst *string) error {
		prompt := label
		if editing && *dst != "" {
			prompt += " [" + *dst + "]"
		}
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" || !editing {
			*dst = v
		}
		return nil
	}

	if err := ask("Title", &f.Title); err != nil {
		return f, nil, err
	}
	if err := ask("Excerpt", &f.Excerpt); err != nil {
		return f, nil, err
	}
	if err := ask("Author", &f.Author); err != nil {
		return f, nil, err
	}
	if err := ask("Category ("+strings.Join(models.Categories[1:], ", ")+")", &f.Category); err != nil {
		return f, nil, err
	}
	if err := ask("Tags (comma separated)", &f.Tags); err != nil {
		return f, nil, err
	}

	prompt := "Content (Markdown)"
	if editing {
		prompt += ", leave empty to keep the current text"
	}
	md, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return f, nil, err
	}
	if md != "" || !editing {
		html, err := render.MarkdownToHTML(md)
		if err != nil {
			return f, nil, err
		}
		f.Content = html
	}

	imgPrompt := "Image path (optional)"
	if editing {
		imgPrompt = "New image path (empty keeps the current image)"
	}
	image, err := a.askImage(imgPrompt)
	if err != nil {
		return f, nil, err
	}
	return f, image, nil
}
