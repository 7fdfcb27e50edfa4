package cmpent

import (
	"fmt"

	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/internal/options"
	"github.com/arloliu/cmpent/section"
)

// BuildConfig holds the settings applied by Build.
type BuildConfig struct {
	versionID uint32
}

func newBuildConfig() *BuildConfig {
	return &BuildConfig{versionID: DefaultVersionID}
}

// BuildOption represents a functional option for configuring Build.
// This is a type alias for the generic Option interface specialized for BuildConfig.
type BuildOption = options.Option[*BuildConfig]

// WithVersionID sets the version id written into the generic header.
// The default is DefaultVersionID.
func WithVersionID(id uint32) BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.versionID = id
	})
}

// ParseConfig holds the settings applied by Parse.
type ParseConfig struct {
	copyData     bool
	maxToolMajor uint16
}

func newParseConfig() *ParseConfig {
	return &ParseConfig{maxToolMajor: ToolVersionMajor}
}

// ParseOption represents a functional option for configuring Parse.
// This is a type alias for the generic Option interface specialized for ParseConfig.
type ParseOption = options.Option[*ParseConfig]

// WithCopy makes Parse copy the entity bytes instead of borrowing the input buffer.
// Use it when the input buffer is reused after Parse returns.
func WithCopy() ParseOption {
	return options.NoError(func(c *ParseConfig) {
		c.copyData = true
	})
}

// WithMaxToolMajor sets the newest tool major version Parse accepts.
// Entities written by a newer ground tool fail with errs.ErrUnsupportedVersion.
func WithMaxToolMajor(major uint16) ParseOption {
	return options.New(func(c *ParseConfig) error {
		if major > section.ToolVersionMajorMax {
			return fmt.Errorf("%w: tool major version %d", errs.ErrFieldOutOfRange, major)
		}
		c.maxToolMajor = major

		return nil
	})
}
