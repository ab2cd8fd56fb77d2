package binary

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

// WithStagingDir creates a disposable staging directory under baseDir, runs
// fn inside it, and removes it again on every exit path, including a panic
// in fn. The name combines the prefix with the current time in nanoseconds
// so concurrent acquisitions in the same working directory cannot collide.
func WithStagingDir(baseDir, prefix string, fn func(dir string) error) error {
	dir := filepath.Join(baseDir, fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errdefs.Wrapf(errdefs.KindFilesystem, err, "create staging directory %s", dir)
	}
	defer os.RemoveAll(dir)

	return fn(dir)
}
