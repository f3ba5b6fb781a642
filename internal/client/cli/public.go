package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/client/carousel"
	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/client/render"
	"github.com/dmitrijs2005/wastecms/internal/common"
)

// Testimonials opens the carousel over the approved testimonials. The slide
// auto-advances until next, prev or goto is used.
func (a *App) Testimonials(ctx context.Context, _ []string) error {
	a.leaveViews()
	a.setView(ViewCarousel)
	a.printf("%s\n", render.LoadingText)

	items, err := a.public.ListApprovedTestimonials(ctx)
	if err != nil {
		a.report(err)
		return err
	}

	c := carousel.New(items, func(t models.Testimonial, i int) {
		a.render.Slide(t, i, len(items))
	})
	a.mu.Lock()
	a.carousel = c
	a.mu.Unlock()

	t, i, ok := c.Current()
	if !ok {
		a.printf("%s\n", carousel.EmptyText)
		return nil
	}
	a.render.Slide(t, i, len(items))
	c.Start(context.WithoutCancel(ctx), a.config.CarouselInterval)
	return nil
}

func (a *App) currentCarousel() *carousel.Carousel {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.carousel
}

// Next, Previous and GoTo navigate the open carousel by hand.
func (a *App) Next(_ context.Context, _ []string) error {
	return a.navigate(func(c *carousel.Carousel) error { c.Next(); return nil })
}

func (a *App) Previous(_ context.Context, _ []string) error {
	return a.navigate(func(c *carousel.Carousel) error { c.Previous(); return nil })
}

// GoTo takes a 1-based slide number.
func (a *App) GoTo(_ context.Context, args []string) error {
	return a.navigate(func(c *carousel.Carousel) error {
		if len(args) == 0 {
			a.printf("Usage: goto <n>\n")
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			a.printf("Usage: goto <n>\n")
			return err
		}
		c.GoTo(n - 1)
		return nil
	})
}

func (a *App) navigate(fn func(c *carousel.Carousel) error) error {
	c := a.currentCarousel()
	if c == nil {
		a.printf("Open the carousel first: type 'testimonials'.\n")
		return nil
	}
	if c.Empty() {
		a.printf("%s\n", carousel.EmptyText)
		return nil
	}
	return fn(c)
}

// Submit walks the visitor through the testimonial form.
func (a *App) Submit(ctx context.Context, _ []string) error {
	form := models.NewTestimonialForm()

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Name", &form.Name},
		{"Position", &form.Position},
		{"Company", &form.Company},
		{"Industry (optional)", &form.Industry},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	text, err := GetMultiline(a.reader, "Your testimonial", a.out)
	if err != nil {
		return err
	}
	form.Testimonial = text

	if form.Rating, err = GetRating(a.reader, form.Rating, a.out); err != nil {
		return err
	}

	image, err := a.askImage("Photo path (optional)")
	if err != nil {
		a.report(err)
		return err
	}

	created, err := a.public.SubmitTestimonial(ctx, form, image)
	if err != nil {
		a.report(err)
		return err
	}

	a.printf("Thank you! Your testimonial was received and is awaiting review (id %s).\n", created.ID)
	return nil
}

// askImage reads an optional image path. An empty answer means no image.
func (a *App) askImage(prompt string) (*models.Upload, error) {
	path, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || path == "" {
		return nil, err
	}
	return models.UploadFromFile(path)
}

// Blogs lists posts. Arguments are search words plus an optional
// category=<name> filter, with underscores standing for spaces.
func (a *App) Blogs(ctx context.Context, args []string) error {
	a.leaveViews()
	a.setView(ViewBlogs)

	category := models.CategoryAll
	var query []string
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "category="); ok {
			category = strings.ReplaceAll(v, "_", " ")
			continue
		}
		query = append(query, arg)
	}

	posts, err := a.public.ListBlogs(ctx, strings.Join(query, " "), category)
	if err != nil {
		a.report(err)
		return err
	}
	a.render.BlogList(posts)
	return nil
}

// Categories prints the blog categories usable with blogs category=<name>.
func (a *App) Categories(_ context.Context, _ []string) error {
	for _, c := range models.Categories {
		a.printf("  %s\n", strings.ReplaceAll(c, " ", "_"))
	}
	return nil
}

// Blog shows a single post by slug.
func (a *App) Blog(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: blog <slug>\n")
		return nil
	}

	a.printf("%s\n", render.LoadingText)
	b, err := a.public.GetBlogBySlug(ctx, args[0])
	if err != nil {
		if isNotFound(err) {
			a.printf("%s\n", render.BlogNotFoundText)
			return err
		}
		a.report(err)
		return err
	}
	a.render.BlogDetail(b)
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
