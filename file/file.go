package file

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const Ext = ".mid"

var renderPattern = regexp.MustCompile(`^\d+_\d{4}_.+\.mid$`)

// UniqueName returns "<unix seconds>_<4 digits>_<base>.mid" so repeated
// renders of the same song never overwrite each other.
func UniqueName(base string, now time.Time, rnd *rand.Rand) string {
	base = strings.TrimSuffix(filepath.Base(base), Ext)
	if base == "" || base == "." {
		base = "song"
	}
	return fmt.Sprintf("%d_%04d_%s%s", now.Unix(), rnd.Intn(10000), base, Ext)
}

// IsRender reports whether name looks like a file written by the emitter.
func IsRender(name string) bool {
	return renderPattern.MatchString(name)
}

// ListRenders returns the rendered files in dir, oldest first.
func ListRenders(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", dir)
	}
	var res []string
	for _, entry := range entries {
		if entry.IsDir() || !IsRender(entry.Name()) {
			continue
		}
		res = append(res, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(res)
	return res, nil
}
