// Package catalog holds the song definitions: tempo, instrument table, chord
// progressions and section order, as YAML data embedded in the binary.
package catalog

import (
	"bytes"
	"embed"
	"io"
	"path"
	"sync"

	"github.com/jsphweid/danseband/arrangement"
	"github.com/jsphweid/danseband/chord"
	"github.com/jsphweid/danseband/model"
	"github.com/jsphweid/danseband/pattern"
	"github.com/jsphweid/danseband/song"
	"github.com/jsphweid/danseband/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed songs/*.yaml
var songsFS embed.FS

// ChordRef is a chord written either as a symbol ("Bbm3") or as an explicit
// [root, third, fifth] triple.
type ChordRef model.Chord

func (c *ChordRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := chord.Parse(node.Value)
		if err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		*c = ChordRef(parsed)
		return nil
	case yaml.SequenceNode:
		var keys []int
		if err := node.Decode(&keys); err != nil {
			return err
		}
		if len(keys) != 3 {
			return errors.Errorf("line %d: chord needs 3 keys, got %d", node.Line, len(keys))
		}
		for i, k := range keys {
			if k < 0 || k > 127 {
				return errors.Errorf("line %d: key %d is outside the MIDI range", node.Line, k)
			}
			c[i] = uint8(k)
		}
		return nil
	}
	return errors.Errorf("line %d: chord must be a symbol or a list of keys", node.Line)
}

type SectionDef struct {
	Kind  arrangement.Kind `yaml:"kind"`
	Label string           `yaml:"label"`
	Bars  int              `yaml:"bars"`
	// name of a progression; ignored when Chords is set
	Progression string     `yaml:"progression"`
	Chords      []ChordRef `yaml:"chords"`
	// semitones, e.g. a key change for the last chorus
	Transpose int `yaml:"transpose"`
	// empty means every instrument of the song
	Instruments []model.Role       `yaml:"instruments"`
	Enter       map[model.Role]int `yaml:"enter"`
	Intensity   float64            `yaml:"intensity"`
	Fade        *arrangement.Fade  `yaml:"fade"`
}

type Definition struct {
	ID           string                `yaml:"id"`
	Name         string                `yaml:"name"`
	Description  string                `yaml:"description"`
	Tempo        float64               `yaml:"tempo"`
	Meter        song.Meter            `yaml:"meter"`
	Instruments  []model.Instrument    `yaml:"instruments"`
	Progressions map[string][]ChordRef `yaml:"progressions"`
	Sections     []SectionDef          `yaml:"sections"`
}

// Load parses and validates one song definition.
func Load(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Wrap(err, "decoding song definition")
	}
	if def.Meter == (song.Meter{}) {
		def.Meter = song.CommonTime
	}
	if err := def.Validate(pattern.Default()); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) Validate(reg pattern.Registry) error {
	if d.ID == "" {
		return errors.New("song definition has no id")
	}
	if d.Tempo <= 0 {
		return errors.Errorf("song %s: tempo must be positive, got %v", d.ID, d.Tempo)
	}
	if len(d.Instruments) == 0 {
		return errors.Errorf("song %s: no instruments", d.ID)
	}
	roles := map[model.Role]bool{}
	for _, inst := range d.Instruments {
		if roles[inst.Role] {
			return errors.Errorf("song %s: role %s appears twice", d.ID, inst.Role)
		}
		roles[inst.Role] = true
		if inst.Channel > 15 {
			return errors.Errorf("song %s: %s channel %d out of range", d.ID, inst.Role, inst.Channel)
		}
		if _, ok := reg.Lookup(inst.Pattern); !ok {
			return errors.Errorf("song %s: %s uses unknown pattern %q", d.ID, inst.Role, inst.Pattern)
		}
	}
	for i, sec := range d.Sections {
		switch sec.Kind {
		case arrangement.Intro, arrangement.Verse, arrangement.Chorus, arrangement.Bridge, arrangement.Outro:
		default:
			return errors.Errorf("song %s: section %d has unknown kind %q", d.ID, i, sec.Kind)
		}
		if len(sec.Chords) == 0 && sec.Progression != "" {
			if _, ok := d.Progressions[sec.Progression]; !ok {
				return errors.Errorf("song %s: section %d uses unknown progression %q", d.ID, i, sec.Progression)
			}
		}
		for _, role := range sec.Instruments {
			if !roles[role] {
				return errors.Errorf("song %s: section %d plays %s which has no track", d.ID, i, role)
			}
		}
	}
	return nil
}

func (s SectionDef) chords(progressions map[string][]ChordRef) []model.Chord {
	refs := s.Chords
	if len(refs) == 0 {
		refs = progressions[s.Progression]
	}
	res := make([]model.Chord, 0, len(refs))
	for _, c := range refs {
		res = append(res, model.Chord(c).Transpose(s.Transpose))
	}
	return res
}

// Arrange turns the definition into sequencer input: the sections in play
// order and the pattern of every role.
func (d *Definition) Arrange(reg pattern.Registry) ([]arrangement.Section, map[model.Role]arrangement.PatternFunc, error) {
	patterns := make(map[model.Role]arrangement.PatternFunc, len(d.Instruments))
	all := make([]model.Role, 0, len(d.Instruments))
	for _, inst := range d.Instruments {
		fn, ok := reg.Lookup(inst.Pattern)
		if !ok {
			return nil, nil, errors.Errorf("song %s: %s uses unknown pattern %q", d.ID, inst.Role, inst.Pattern)
		}
		patterns[inst.Role] = fn
		all = append(all, inst.Role)
	}

	sections := make([]arrangement.Section, 0, len(d.Sections))
	for _, sec := range d.Sections {
		instruments := sec.Instruments
		if len(instruments) == 0 {
			instruments = all
		}
		sections = append(sections, arrangement.Section{
			Kind:        sec.Kind,
			Label:       sec.Label,
			Bars:        sec.Bars,
			Chords:      sec.chords(d.Progressions),
			Instruments: instruments,
			Enter:       sec.Enter,
			Intensity:   sec.Intensity,
			Fade:        sec.Fade,
		})
	}
	return sections, patterns, nil
}

// Document is an empty song document with one track per instrument.
func (d *Definition) Document() *song.Document {
	return song.New(d.Name, d.Tempo, d.Meter, d.Instruments)
}

// Bars is the planned length of the song.
func (d *Definition) Bars() int {
	var total int
	for _, sec := range d.Sections {
		if sec.Bars > 0 {
			total += sec.Bars
		}
	}
	return total
}

var (
	loadOnce sync.Once
	songs    map[string]*Definition
	loadErr  error
)

func load() {
	entries, err := songsFS.ReadDir("songs")
	if err != nil {
		loadErr = errors.Wrap(err, "reading embedded songs")
		return
	}
	songs = make(map[string]*Definition, len(entries))
	for _, entry := range entries {
		data, err := songsFS.ReadFile(path.Join("songs", entry.Name()))
		if err != nil {
			loadErr = errors.Wrapf(err, "reading %s", entry.Name())
			return
		}
		def, err := Load(bytes.NewReader(data))
		if err != nil {
			loadErr = errors.Wrapf(err, "loading %s", entry.Name())
			return
		}
		if _, dup := songs[def.ID]; dup {
			loadErr = errors.Errorf("song id %s defined twice", def.ID)
			return
		}
		songs[def.ID] = def
	}
}

func catalog() map[string]*Definition {
	loadOnce.Do(load)
	if loadErr != nil {
		// embedded data is fixed at build time
		panic(loadErr)
	}
	return songs
}

// All returns every built-in song ordered by id.
func All() []*Definition {
	cat := catalog()
	res := make([]*Definition, 0, len(cat))
	for _, id := range IDs() {
		res = append(res, cat[id])
	}
	return res
}

func ByID(id string) (*Definition, bool) {
	def, ok := catalog()[id]
	return def, ok
}

func IDs() []string {
	return util.SortedKeys(catalog())
}
