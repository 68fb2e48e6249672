package model

// Role identifies an instrument part in an arrangement.
type Role string

const (
	SteelGuitar  Role = "steel_guitar"
	Accordion    Role = "accordion"
	Bass         Role = "bass"
	RhythmGuitar Role = "rhythm_guitar"
	Drums        Role = "drums"
	LeadVocal    Role = "lead_vocal"
	TenorSax     Role = "tenor_sax"
	AltoSax      Role = "alto_sax"
	SynthLead    Role = "synth_lead"
	Pad          Role = "pad"
	Backing      Role = "backing"
	SynthPulse   Role = "synth_pulse"
)

// Instrument is the per-track configuration of a role.
type Instrument struct {
	Role    Role   `yaml:"role" json:"role"`
	Name    string `yaml:"name" json:"name"`
	Program uint8  `yaml:"program" json:"program"`
	Channel uint8  `yaml:"channel" json:"channel"`
	Volume  uint8  `yaml:"volume" json:"volume"`
	Pan     uint8  `yaml:"pan" json:"pan"`
	Pattern string `yaml:"pattern" json:"pattern"`

	// Expressive parts start with modulation at rest and a centered wheel.
	Expressive bool `yaml:"expressive" json:"expressive"`
}
