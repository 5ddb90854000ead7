package descriptor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalid is returned when the user-supplied path names neither a solution
// descriptor, a directory, nor an existing file. It maps to exit code 1.
var ErrInvalid = errors.New("invalid solution descriptor path")

type Kind int

const (
	// KindFile means the descriptor is a single solution file.
	KindFile Kind = iota
	// KindDirectory means the descriptor is a directory to scan directly.
	KindDirectory
)

type Format int

const (
	// FormatNone applies to directory descriptors.
	FormatNone Format = iota
	// FormatLegacy is the delimited-text .sln format.
	FormatLegacy
	// FormatMarkup is the XML .slnx format.
	FormatMarkup
)

// Descriptor identifies the solution input after classification. Immutable.
type Descriptor struct {
	Kind   Kind
	Format Format
	// Path is the absolute solution file path (KindFile) or directory path
	// (KindDirectory).
	Path string
	// Original is the absolutized user-supplied path; it becomes the
	// manifest's solution identifier and anchors toolchain discovery.
	Original string
}

// Dir returns the solution's containing directory.
func (d Descriptor) Dir() string {
	if d.Kind == KindDirectory {
		return d.Path
	}
	return filepath.Dir(d.Path)
}

// Classify decides how to treat a user-supplied path. Extension dispatch runs
// before the directory check so that solution files always win; an existing
// plain file with an unrecognized extension anchors on its parent directory,
// which lets a stray file inside a solution folder still drive a scan.
func Classify(path string) (Descriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrInvalid, path)
	}

	info, statErr := os.Stat(abs)
	isFile := statErr == nil && !info.IsDir()
	ext := strings.ToLower(filepath.Ext(abs))

	switch {
	case ext == ".sln" && isFile:
		return Descriptor{Kind: KindFile, Format: FormatLegacy, Path: abs, Original: abs}, nil
	case ext == ".slnx" && isFile:
		return Descriptor{Kind: KindFile, Format: FormatMarkup, Path: abs, Original: abs}, nil
	case statErr == nil && info.IsDir():
		return Descriptor{Kind: KindDirectory, Format: FormatNone, Path: abs, Original: abs}, nil
	case isFile:
		return Descriptor{Kind: KindDirectory, Format: FormatNone, Path: filepath.Dir(abs), Original: abs}, nil
	default:
		return Descriptor{}, fmt.Errorf("%w: %s", ErrInvalid, path)
	}
}
