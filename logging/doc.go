// Package logging builds the pipeline's slog loggers. Output is JSON unless the
// settings document asks for "text".
package logging
