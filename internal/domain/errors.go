package domain

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnsupportedFileType indicates the uploaded document is neither a PDF
	// nor plain text.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyDocument indicates the document carried no extractable text.
	ErrEmptyDocument = errors.New("empty document")
)
