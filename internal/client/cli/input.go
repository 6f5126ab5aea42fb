package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"Forumul/internal/core/forum"
	"Forumul/internal/core/media"
	"Forumul/internal/core/posts"
)

// clearToken blanks a field when editing; an empty answer keeps the current value
const clearToken = "-"

// ask prints a prompt and reads one line. A partial last line before EOF is returned.
func (a *App) ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPostForm prompts for title, content and image.
// The image answer is a URL, or @path to upload a local file.
// With current set, empty answers keep the current values and "-" clears content or image.
func (a *App) readPostForm(current *posts.Post) (forum.PostInput, error) {
	var in forum.PostInput

	titlePrompt := "Title"
	if current != nil {
		titlePrompt = fmt.Sprintf("Title [%s]", current.Title)
	}
	title, err := a.ask(titlePrompt)
	if err != nil {
		return in, err
	}
	if current != nil && strings.TrimSpace(title) == "" {
		title = current.Title
	}
	in.Title = title

	content, err := a.ask("Content" + currentHint(current, func(p *posts.Post) *string { return p.Content }))
	if err != nil {
		return in, err
	}
	in.Content = keepOrClear(content, current, func(p *posts.Post) *string { return p.Content })

	image, err := a.ask("Image URL or @file" + currentHint(current, func(p *posts.Post) *string { return p.ImageURL }))
	if err != nil {
		return in, err
	}
	image = strings.TrimSpace(image)

	if path, ok := strings.CutPrefix(image, "@"); ok {
		data, err := a.readFile(path)
		if err != nil {
			return in, forum.NewValidationError("image", fmt.Sprintf("cannot read %s: %v", path, err))
		}
		in.Image.SelectFile(filepath.Base(path), data)
		return in, nil
	}

	in.Image = media.FromURL(keepOrClear(image, current, func(p *posts.Post) *string { return p.ImageURL }))
	return in, nil
}

func currentHint(current *posts.Post, field func(*posts.Post) *string) string {
	if current == nil {
		return ""
	}
	if v := field(current); v != nil {
		return fmt.Sprintf(" [%s, %s clears]", PreviewLine(*v), clearToken)
	}
	return ""
}

func keepOrClear(answer string, current *posts.Post, field func(*posts.Post) *string) string {
	if current == nil {
		return answer
	}
	switch strings.TrimSpace(answer) {
	case clearToken:
		return ""
	case "":
		if v := field(current); v != nil {
			return *v
		}
		return ""
	default:
		return answer
	}
}
