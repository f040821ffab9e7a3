package domain

import "errors"

var (
	// ErrEmptyQuery signals a missing or empty search query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrPhotoNotFound signals a missing photo record.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrObjectStoreError signals an object store failure.
	ErrObjectStoreError = errors.New("object store error")
	// ErrDetectorError signals a label detector failure.
	ErrDetectorError = errors.New("label detector error")
	// ErrResolverError signals an intent resolver failure.
	ErrResolverError = errors.New("intent resolver error")
	// ErrIndexError signals a document index failure.
	ErrIndexError = errors.New("index error")
)
