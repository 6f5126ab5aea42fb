package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
	"Forumul/internal/core/timeutil"
)

const previewLineRunes = 40

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// PreviewLine shortens text to one line for prompts
func PreviewLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= previewLineRunes {
		return s
	}
	return string(r[:previewLineRunes]) + "..."
}

func (a *App) printList() {
	pres := a.list.Presentation()

	var b strings.Builder
	header := fmt.Sprintf("Posts (%s", pres.Sort)
	if pres.SearchTerm != "" {
		header += fmt.Sprintf(", search %q", pres.SearchTerm)
	}
	b.WriteString(header + ")\n")

	if msg := pres.EmptyMessage(); msg != "" {
		b.WriteString("  " + msg + "\n")
	}
	for _, s := range pres.Summaries(a.now()) {
		fmt.Fprintf(&b, "  [%d] %s  (%d upvotes, %s)\n", s.ID, s.Title, s.Upvotes, s.PostedAgo)
		if s.Preview != "" {
			fmt.Fprintf(&b, "      %s\n", s.Preview)
		}
		if s.ImageURL != nil {
			fmt.Fprintf(&b, "      image: %s\n", *s.ImageURL)
		}
	}

	_, _ = fmt.Fprint(a.out, b.String())
}

func (a *App) printDetail() {
	if a.detail == nil {
		return
	}
	p, ok := a.detail.Post()
	if !ok {
		return
	}

	now := a.now()
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s\n", p.ID, p.Title)
	fmt.Fprintf(&b, "  %d upvotes, posted %s\n", p.Upvotes, strings.ToLower(timeutil.TimeAgo(now, p.CreatedAt)))
	if p.Content != nil {
		fmt.Fprintf(&b, "\n%s\n", *p.Content)
	}
	if p.ImageURL != nil {
		fmt.Fprintf(&b, "\n  image: %s\n", *p.ImageURL)
	}

	thread := a.detail.Comments()
	fmt.Fprintf(&b, "\nComments (%d)\n", len(thread))
	if a.detail.CommentsDegraded() {
		b.WriteString("  Comments could not be loaded.\n")
	}
	for _, c := range thread {
		fmt.Fprintf(&b, "  - %s  (%s)\n", c.Content, timeutil.TimeAgo(now, c.CreatedAt))
	}

	_, _ = fmt.Fprint(a.out, b.String())
}

// report prints a user-facing message for a command error
func (a *App) report(err error) {
	printlnFn(userMessage(err))
}

func userMessage(err error) string {
	var valErr *forum.ValidationError
	switch {
	case errors.As(err, &valErr):
		return fmt.Sprintf("Invalid %s: %s", valErr.Field, valErr.Message)
	case errors.Is(err, posts.ErrInvalidID):
		return "Post ids are numbers, e.g. open 3"
	case forum.IsNotFound(err):
		return "Post not found."
	case forum.IsMediaUploadError(err):
		return "Image upload failed; the post was not saved."
	case forum.IsCascadeDeleteError(err):
		return "Comments could not be deleted; the post was kept."
	case forum.IsStoreReadError(err), forum.IsStoreWriteError(err):
		return "The forum is unavailable right now, please try again."
	case errors.Is(err, errNoOpenPost):
		return "Open a post first: open <id>"
	default:
		return "Error: " + err.Error()
	}
}
