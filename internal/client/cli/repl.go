package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to
type execIface interface {
	List(ctx context.Context) error
	Search(term string)
	Sort(mode string) error
	Open(ctx context.Context, rawID string) error
	Back()
	New(ctx context.Context) error
	Edit(ctx context.Context) error
	Upvote(ctx context.Context, rawID string) error
	Comment(ctx context.Context, text string) error
	Delete(ctx context.Context) error
	report(err error)
}

const helpText = `Commands:
  list                  reload and show posts
  search <term>         filter by title (no term clears)
  sort newest|popular   change ordering
  open <id>             show a post with its comments
  back                  close the open post
  new                   create a post
  edit                  edit the open post
  upvote [id]           upvote the open post, or a listed post by id
  comment <text>        comment on the open post
  delete                delete the open post and its comments
  help                  show this help
  exit | quit           leave`

// runREPL reads one command per line and dispatches it.
// Errors are reported to the user and the loop continues; it ends on EOF or exit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("forumul %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		cmd, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
		if cmd == "" {
			continue
		}

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "search":
			a.Search(rest)

		case "sort":
			cmdErr = a.Sort(strings.TrimSpace(rest))

		case "open":
			cmdErr = a.Open(ctx, strings.TrimSpace(rest))

		case "back":
			a.Back()

		case "new":
			cmdErr = a.New(ctx)

		case "edit":
			cmdErr = a.Edit(ctx)

		case "upvote":
			cmdErr = a.Upvote(ctx, strings.TrimSpace(rest))

		case "comment":
			cmdErr = a.Comment(ctx, rest)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd, "(type help)")
		}

		if cmdErr != nil {
			a.report(cmdErr)
		}
		if err != nil {
			// last line had no trailing newline
			return
		}
	}
}
