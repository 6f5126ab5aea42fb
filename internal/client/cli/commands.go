package cli

import (
	"context"
	"errors"
	"strings"

	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
)

// errNoOpenPost is returned by commands that act on the open post when none is open
var errNoOpenPost = errors.New("no post is open (use: open <id>)")

// List reloads the home list from the store and prints it
func (a *App) List(ctx context.Context) error {
	if err := a.list.LoadPosts(ctx); err != nil {
		return err
	}
	a.printList()
	return nil
}

// Search sets the search term on the home list. The term is used as typed.
func (a *App) Search(term string) {
	a.list.SetSearchTerm(term)
	a.printList()
}

// Sort sets the sort mode on the home list
func (a *App) Sort(raw string) error {
	mode, err := forum.ParseSortMode(raw)
	if err != nil {
		return err
	}
	a.list.SetSortMode(mode)
	a.printList()
	return nil
}

// Open loads a post and its comments into a fresh detail screen
func (a *App) Open(ctx context.Context, rawID string) error {
	id, err := posts.ParseID(rawID)
	if err != nil {
		return err
	}

	a.closeDetail()
	detail := forum.NewDetailScreen(a.posts, a.comments, a.logger)
	if err := detail.LoadPostDetail(ctx, id); err != nil {
		detail.Close()
		return err
	}

	a.detail = detail
	a.printDetail()
	return nil
}

// Back closes the open post; results still in flight for it are dropped
func (a *App) Back() {
	a.closeDetail()
	a.printList()
}

// New prompts for a post form and creates the post
func (a *App) New(ctx context.Context) error {
	in, err := a.readPostForm(nil)
	if err != nil {
		return err
	}

	created, err := a.sequencer.CreatePost(ctx, in, a.screens()...)
	if err != nil {
		return err
	}

	printlnFn("Created post", formatID(created.ID))
	a.printList()
	return nil
}

// Edit prompts for new values of the open post and saves them
func (a *App) Edit(ctx context.Context) error {
	current, err := a.openPost()
	if err != nil {
		return err
	}

	in, err := a.readPostForm(current)
	if err != nil {
		return err
	}

	if _, err := a.sequencer.UpdatePost(ctx, current.ID, in, a.screens()...); err != nil {
		return err
	}

	printlnFn("Saved.")
	a.printDetail()
	return nil
}

// Upvote adds one to the open post, or to a listed post when an id is given
func (a *App) Upvote(ctx context.Context, rawID string) error {
	var (
		cache  forum.PostCache
		others []forum.Screen
		id     int64
	)

	if rawID == "" {
		current, err := a.openPost()
		if err != nil {
			return err
		}
		id = current.ID
		cache = a.detail
		others = []forum.Screen{a.list}
	} else {
		parsed, err := posts.ParseID(rawID)
		if err != nil {
			return err
		}
		id = parsed
		cache = a.list
		if a.detail != nil {
			others = []forum.Screen{a.detail}
		}
	}

	upvotes, err := a.sequencer.Upvote(ctx, cache, id, others...)
	if err != nil {
		return err
	}

	printlnFn("Upvoted post", formatID(id), "- now", upvotes)
	return nil
}

// Comment adds a comment to the open post. Blank text is ignored.
func (a *App) Comment(ctx context.Context, text string) error {
	current, err := a.openPost()
	if err != nil {
		return err
	}

	created, err := a.sequencer.AddComment(ctx, current.ID, text, a.screens()...)
	if err != nil {
		return err
	}
	if created == nil {
		printlnFn("Empty comment ignored.")
		return nil
	}

	a.printDetail()
	return nil
}

// Delete removes the open post and its comments after confirmation
func (a *App) Delete(ctx context.Context) error {
	current, err := a.openPost()
	if err != nil {
		return err
	}

	answer, err := a.ask("Delete \"" + current.Title + "\" and all its comments? [y/N]")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.sequencer.DeletePost(ctx, current.ID, a.screens()...); err != nil {
		return err
	}

	printlnFn("Deleted post", formatID(current.ID))
	a.Back()
	return nil
}

func (a *App) openPost() (*posts.Post, error) {
	if a.detail == nil {
		return nil, errNoOpenPost
	}
	p, ok := a.detail.Post()
	if !ok {
		return nil, errNoOpenPost
	}
	return p, nil
}
