package media

import (
	"context"
	"strings"
)

// BlobStore is the contract the resolver needs from the blob storage service
type BlobStore interface {
	// Upload stores data under key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// PublicURL returns a URL from which the object stored under key can be retrieved
	PublicURL(ctx context.Context, key string) (string, error)
}

// File is a binary image chosen for upload
type File struct {
	Name string
	Data []byte
}

// Input is the image part of a post form: typed URL text, a chosen file, or neither.
// A chosen file always wins at submit time.
type Input struct {
	File *File
	URL  string
}

// FromURL builds an input from typed URL text
func FromURL(url string) Input {
	return Input{URL: url}
}

// FromFile builds an input from a chosen file
func FromFile(name string, data []byte) Input {
	return Input{File: &File{Name: name, Data: data}}
}

// SelectFile chooses a file and clears any typed URL
func (in *Input) SelectFile(name string, data []byte) {
	in.File = &File{Name: name, Data: data}
	in.URL = ""
}

// HasFile reports whether resolution will upload
func (in Input) HasFile() bool {
	return in.File != nil
}

// IsEmpty reports whether the input resolves to no image without any upload
func (in Input) IsEmpty() bool {
	return in.File == nil && strings.TrimSpace(in.URL) == ""
}
