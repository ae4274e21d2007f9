// Package file provides the file-based config.DataFetcher for settings documents.
//
// The document is read when the Fetcher is constructed and never again, so every
// later Fetch observes the same bytes even if the file changes on disk.
//
// Error Handling:
//   - a missing path wraps config.ErrDocumentNotFound
//   - a directory path wraps ErrPathIsDirectory
//   - other stat/read failures are returned with the path for context
package file
