// Package emitter renders song definitions into documents and writes them
// out as Standard MIDI Files.
package emitter

import (
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/danseband/arrangement"
	"github.com/jsphweid/danseband/catalog"
	"github.com/jsphweid/danseband/file"
	"github.com/jsphweid/danseband/model"
	"github.com/jsphweid/danseband/pattern"
	"github.com/jsphweid/danseband/sample"
	"github.com/jsphweid/danseband/song"
	"github.com/jsphweid/danseband/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// attempts at finding a free name before giving up
const maxNameAttempts = 16

var (
	rndMu sync.Mutex
	rnd   = rand.New(rand.NewSource(time.Now().UnixNano()))
	now   = time.Now
)

// Render sequences every section of def into a fresh document.
func Render(def *catalog.Definition, reg pattern.Registry) (*song.Document, error) {
	sections, patterns, err := def.Arrange(reg)
	if err != nil {
		return nil, err
	}

	doc := def.Document()
	seq := arrangement.Sequencer{Doc: doc, Patterns: patterns}
	bars := seq.Run(sections)

	slog.Debug("rendered song",
		"id", def.ID,
		"bars", bars,
		"tracks", len(doc.Tracks),
		"events", len(doc.Events),
	)
	return doc, nil
}

// Write encodes doc as a MIDI file onto w.
func Write(w io.Writer, doc *song.Document) error {
	s, err := doc.SMF()
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not encode midi file")
	}
	return nil
}

// publish hard-links the finished temp file under a fresh unique name. A link
// fails on an existing name, so a file already there is never replaced.
func publish(tmp, dir, base string) (string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		rndMu.Lock()
		name := file.UniqueName(base, now(), rnd)
		rndMu.Unlock()

		path := filepath.Join(dir, name)
		err := os.Link(tmp, path)
		if err == nil {
			return path, nil
		}
		if !os.IsExist(err) {
			return "", errors.Wrapf(err, "could not move render to %s", path)
		}
		slog.Debug("render name taken", "path", path)
	}
	return "", errors.Errorf("no free file name for %s in %s", base, dir)
}

// Emit writes doc into dir under a fresh unique name and returns its path.
func Emit(doc *song.Document, dir, base string) (string, error) {
	s, err := doc.SMF()
	if err != nil {
		return "", err
	}
	return EmitFile(s, dir, base)
}

// EmitFile writes s into dir under a fresh unique name. The file only
// appears once it is complete.
func EmitFile(s *smf.SMF, dir, base string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "could not create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".render-*")
	if err != nil {
		return "", errors.Wrap(err, "could not create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := s.WriteTo(tmp); err != nil {
		tmp.Close()
		return "", errors.Wrap(err, "could not encode midi file")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "could not flush midi file")
	}

	path, err := publish(tmp.Name(), dir, base)
	if err != nil {
		return "", err
	}

	slog.Info("wrote midi file", "path", path)
	return path, nil
}

// Preview cuts the first bars of doc.
func Preview(doc *song.Document, bars int) (*smf.SMF, error) {
	if bars <= 0 {
		return nil, errors.Errorf("preview needs at least one bar, got %d", bars)
	}
	s, err := doc.SMF()
	if err != nil {
		return nil, err
	}
	return sample.Create(s, bars, sample.TicksPerBar(s)), nil
}

// NewRecord describes a file written by Emit.
func NewRecord(songID string, doc *song.Document, path string) model.RenderRecord {
	counts := make([]int, 0, len(doc.Tracks))
	for _, st := range doc.Stats() {
		counts = append(counts, st.Notes)
	}
	return model.RenderRecord{
		ID:        uuid.New().String(),
		SongID:    songID,
		Path:      path,
		Tempo:     doc.Tempo,
		Bars:      doc.Bars(),
		Notes:     int(util.Sum(counts)),
		CreatedAt: time.Now().UTC(),
	}
}

// Generate renders a built-in song and emits it into dir.
func Generate(id, dir string) (string, *song.Document, error) {
	def, ok := catalog.ByID(id)
	if !ok {
		return "", nil, errors.Errorf("unknown song %q, choose from %v", id, catalog.IDs())
	}
	doc, err := Render(def, pattern.Default())
	if err != nil {
		return "", nil, err
	}
	path, err := Emit(doc, dir, id)
	if err != nil {
		return "", nil, err
	}
	return path, doc, nil
}
