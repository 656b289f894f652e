package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	oerrors "github.com/obsi2/bundler/internal/errors"
)

// Produced proves that a bundle artifact exists. Stages that append to the
// bundle take a *Produced, so they cannot run before the emitter.
type Produced struct {
	path      string
	namespace string
	modules   []Registered
	size      int64
}

// Path returns the artifact path.
func (p *Produced) Path() string { return p.path }

// Namespace returns the namespace root the bundle starts.
func (p *Produced) Namespace() string { return p.namespace }

// Modules returns the registered modules in emission order. It is nil for
// an adopted artifact.
func (p *Produced) Modules() []Registered { return p.modules }

// Size returns the artifact size in bytes when the token was issued.
func (p *Produced) Size() int64 { return p.size }

// Adopt issues a token for a bundle written by an earlier invocation. The
// artifact must be a non-empty regular file.
func Adopt(path, namespace string) (*Produced, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("bundle artifact %s: %v", path, err), path,
			"run 'obsi-bundle bundle' before appending licenses")
	}
	if err != nil {
		return nil, oerrors.FromFS(err, "reading bundle artifact", path)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("%s is not a bundle artifact", path), path,
			"run 'obsi-bundle bundle' before appending licenses")
	}

	return &Produced{
		path:      path,
		namespace: namespace,
		size:      info.Size(),
	}, nil
}
