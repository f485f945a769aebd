package document

import (
	"errors"
	"io"
	"os"
)

// Destination is where Finalize writes the package. Nothing is opened until
// then.
type Destination struct {
	path string
	w    io.Writer
}

// ToFile targets a file path. The file is created at Finalize and removed
// again if writing fails.
func ToFile(path string) Destination {
	return Destination{path: path}
}

// ToWriter targets an open writer. The writer is not closed.
func ToWriter(w io.Writer) Destination {
	return Destination{w: w}
}

func (d Destination) String() string {
	switch {
	case d.path != "":
		return d.path
	case d.w != nil:
		return "<writer>"
	}
	return "<none>"
}

func (d Destination) write(data []byte) error {
	if d.w != nil {
		_, err := d.w.Write(data)
		return err
	}
	if d.path == "" {
		return errors.New("no destination")
	}

	f, err := os.Create(d.path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(d.path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(d.path)
		return err
	}
	return nil
}
