package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"Forumul/internal/core/comments"
	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
)

// App holds the session state of the terminal client
type App struct {
	posts     posts.Repository
	comments  comments.Repository
	sequencer *forum.Sequencer
	logger    *slog.Logger
	list      *forum.ListScreen
	detail    *forum.DetailScreen // nil when no post is open
	reader    *bufio.Reader
	out       io.Writer
	now       func() time.Time
	readFile  func(string) ([]byte, error)
}

// NewApp creates a client reading commands from in and writing to out
func NewApp(postRepo posts.Repository, commentRepo comments.Repository, sequencer *forum.Sequencer, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		posts:     postRepo,
		comments:  commentRepo,
		sequencer: sequencer,
		logger:    logger,
		list:      forum.NewListScreen(postRepo, logger),
		reader:    bufio.NewReader(in),
		out:       out,
		now:       time.Now,
		readFile:  os.ReadFile,
	}
}

// Run loads the home list and serves commands until exit or end of input.
// Every screen is closed on return.
func (a *App) Run(ctx context.Context) {
	defer a.closeAll()

	if err := a.List(ctx); err != nil {
		a.report(err)
	}
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) prompt() string {
	if a.detail != nil {
		if p, ok := a.detail.Post(); ok {
			return "post " + formatID(p.ID)
		}
	}
	return "posts"
}

// screens returns every live screen, home list first
func (a *App) screens() []forum.Screen {
	out := []forum.Screen{a.list}
	if a.detail != nil {
		out = append(out, a.detail)
	}
	return out
}

func (a *App) closeDetail() {
	if a.detail != nil {
		a.detail.Close()
		a.detail = nil
	}
}

func (a *App) closeAll() {
	a.closeDetail()
	a.list.Close()
}
