package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"Forumul/internal/api/handlers"
	"Forumul/internal/core/forum"
	"Forumul/internal/core/media"
)

// formOverhead is room for the text fields and multipart framing around the image
const formOverhead = 1 << 20

// postRequest is the JSON form of a post write
type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// readPostInput decodes a post form from JSON or multipart/form-data.
// In a multipart form a non-empty "image" file part wins over the imageUrl field.
func (h *Handler) readPostInput(w http.ResponseWriter, r *http.Request) (forum.PostInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+formOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return h.readMultipart(w, r)
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDecodeError(w, err)
		return forum.PostInput{}, false
	}

	return forum.PostInput{
		Title:   req.Title,
		Content: req.Content,
		Image:   media.FromURL(req.ImageURL),
	}, true
}

func (h *Handler) readMultipart(w http.ResponseWriter, r *http.Request) (forum.PostInput, bool) {
	if err := r.ParseMultipartForm(h.maxUpload + formOverhead); err != nil {
		h.writeDecodeError(w, err)
		return forum.PostInput{}, false
	}

	in := forum.PostInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Image:   media.FromURL(r.FormValue("imageUrl")),
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, true
	case err != nil:
		h.writeDecodeError(w, err)
		return forum.PostInput{}, false
	}
	defer func() { _ = file.Close() }()

	// read one byte past the limit so the resolver can report the file as too large
	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		h.writeDecodeError(w, err)
		return forum.PostInput{}, false
	}

	in.Image.SelectFile(header.Filename, data)
	return in, true
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
			fmt.Sprintf("Request body too large (max %d bytes)", maxErr.Limit))
		return
	}
	handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
}
