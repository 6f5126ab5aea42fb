package media

import "errors"

var (
	// ErrEmptyFile is returned when a chosen file has no bytes
	ErrEmptyFile = errors.New("image file is empty")

	// ErrFileTooLarge is returned when a chosen file exceeds the upload limit
	ErrFileTooLarge = errors.New("image file exceeds size limit")

	// ErrUnsupportedType is returned when a chosen file is not a supported image
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrUploadFailed is returned when the blob store rejects or fails the upload
	ErrUploadFailed = errors.New("image upload failed")

	// ErrResolveFailed is returned when no public URL can be obtained for an uploaded key
	ErrResolveFailed = errors.New("image URL resolution failed")

	// ErrNilDependency is returned when a required dependency is nil
	ErrNilDependency = errors.New("required dependency is nil")
)

// IsInputError reports whether err describes a problem with the chosen file itself,
// detectable before anything reaches the blob store
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrUnsupportedType)
}
