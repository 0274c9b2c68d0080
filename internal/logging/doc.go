// Package logging provides structured logging for configuror using slog.
//
// Two formats are available: a compact coloured text [Handler] for
// terminals and the standard JSON handler for --log-file output. Both are
// built by [NewFormatHandler] and share [ReplaceAttr], which names
// [LevelTrace] "TRACE" and masks attribute values whose keys look like
// secrets or whose contents look like API tokens. Maps and slices logged
// with slog.Any are masked element by element.
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("loaded configuration file", "path", "app.yaml")
//
// Use [ForTest] in tests so log lines show up only for failing tests, and
// [NewDiscard] when output should be dropped entirely.
package logging
