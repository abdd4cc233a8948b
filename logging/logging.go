package logging

import "go.uber.org/zap"

// Setup builds the zap logger, installs it as the global logger and returns
// the sugared handle.
func Setup() *zap.SugaredLogger {
	logger := zap.NewExample()
	zap.ReplaceGlobals(logger)
	return logger.Sugar()
}
