package storage

import "io"

// BlobStore keeps uploaded documents. Keys are slash-separated relative paths
// such as "uploads/exam.docx" or "library/exam.docx".
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
