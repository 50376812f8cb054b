package types

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/lepinkainen/vocprep/config"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Config  *config.Config
	Logger  *zap.Logger

	// Confirm answers yes/no questions before destructive or long-running work.
	Confirm func(question string) bool

	// Out receives user-facing output; nil means stdout.
	Out io.Writer
}

// VersionOrDefault returns the version string, tolerating a nil context
func (c *AppContext) VersionOrDefault() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

// Log returns the configured logger or a no-op one
func (c *AppContext) Log() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Stdout returns the writer for user-facing output
func (c *AppContext) Stdout() io.Writer {
	if c == nil || c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Ask asks question through Confirm. Without a Confirm function every
// question is declined.
func (c *AppContext) Ask(question string) error {
	if c == nil || c.Confirm == nil || !c.Confirm(question) {
		return ErrUserDeclined
	}
	return nil
}
