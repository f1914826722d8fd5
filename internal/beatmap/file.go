package beatmap

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var ErrEmptyPath = errors.New("no output path given")

func Encode(w io.Writer, b *BeatMap) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(b), "unable to encode beat map")
}

// WriteFile writes the map as indented JSON, creating the parent directory
// when it does not exist yet.
func WriteFile(path string, b *BeatMap) error {
	if path == "" {
		return ErrEmptyPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); nil != err {
			return errors.Wrapf(err, "unable to create %v", dir)
		}
	}
	f, err := os.Create(path)
	if nil != err {
		return errors.Wrapf(err, "unable to create %v", path)
	}
	if err := Encode(f, b); nil != err {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "unable to write %v", path)
}

func ReadFile(path string) (*BeatMap, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to read %v", path)
	}
	var b BeatMap
	if err := json.Unmarshal(data, &b); nil != err {
		return nil, errors.Wrapf(err, "unable to parse %v", path)
	}
	return &b, nil
}
