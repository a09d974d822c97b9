package resonance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/resonances/xs"
)

// NeutronMass is the neutron mass in amu, used when the projectile record
// omits it.
const NeutronMass = 1.00866491588

// Particle is a particle record. Mass is in amu.
type Particle struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass"`
	Spin   float64 `yaml:"spin"`
	Charge int     `yaml:"charge"`
	// Levels maps an excitation suffix such as "e1" to the level's spin.
	Levels map[string]float64 `yaml:"levels,omitempty"`
}

// Evaluation is one evaluated target.
type Evaluation struct {
	Projectile Particle          `yaml:"projectile"`
	Target     Particle          `yaml:"target"`
	Particles  []Particle        `yaml:"particles,omitempty"`
	Resolved   []ResolvedRegion  `yaml:"resolved,omitempty"`
	Unresolved *UnresolvedRegion `yaml:"unresolved,omitempty"`
}

// ResolvedRegion is one resolved-resonance energy range.
type ResolvedRegion struct {
	Formalism  Formalism `yaml:"formalism"`
	LowerBound float64   `yaml:"lowerBound"`
	UpperBound float64   `yaml:"upperBound"`

	ScatteringRadius       ScatteringRadius `yaml:"scatteringRadius"`
	CalculateChannelRadius bool             `yaml:"calculateChannelRadius,omitempty"`
	// LValuesNeeded is the number of partial waves needed for potential
	// scattering to converge.
	LValuesNeeded int `yaml:"lValuesNeeded,omitempty"`

	// Resonances is used by SLBW, MLBW and ReichMoore.
	Resonances Table `yaml:"resonances,omitempty"`
	// RMatrix is used by RMatrixLimited.
	RMatrix *RMatrix `yaml:"rMatrix,omitempty"`
}

// Resonance is one row of a Breit-Wigner or Reich-Moore table. Widths in eV.
type Resonance struct {
	Energy        float64 `yaml:"energy"`
	L             int     `yaml:"L"`
	J             float64 `yaml:"J"`
	ChannelSpin   float64 `yaml:"channelSpin,omitempty"`
	TotalWidth    float64 `yaml:"totalWidth,omitempty"`
	NeutronWidth  float64 `yaml:"neutronWidth"`
	CaptureWidth  float64 `yaml:"captureWidth"`
	FissionWidthA float64 `yaml:"fissionWidthA,omitempty"`
	FissionWidthB float64 `yaml:"fissionWidthB,omitempty"`
}

// Table is a list of resonances, nominally sorted by energy.
type Table []Resonance

// HasFission reports whether any row carries a fission width.
func (t Table) HasFission() bool {
	for _, r := range t {
		if r.FissionWidthA != 0 || r.FissionWidthB != 0 {
			return true
		}
	}

	return false
}

// MaxL returns the largest L in the table.
func (t Table) MaxL() int {
	m := 0
	for _, r := range t {
		if r.L > m {
			m = r.L
		}
	}

	return m
}

// PairTag says what role a particle pair plays.
type PairTag string

// Pair roles.
const (
	TagElastic     PairTag = "elastic"
	TagCapture     PairTag = "capture"
	TagFission     PairTag = "fission"
	TagCompetitive PairTag = "competitive"
)

// ApproximationReichMoore eliminates capture channels in R-Matrix Limited.
const ApproximationReichMoore = "Reich_Moore"

// RMatrix holds R-Matrix Limited parameters.
type RMatrix struct {
	Approximation          string         `yaml:"approximation,omitempty"`
	RelativisticKinematics bool           `yaml:"relativisticKinematics,omitempty"`
	Pairs                  []ParticlePair `yaml:"pairs"`
	SpinGroups             []SpinGroup    `yaml:"spinGroups"`
}

// ParticlePair is an R-Matrix Limited channel definition.
type ParticlePair struct {
	// Label is a short identifier used by overrides.
	Label string  `yaml:"label"`
	Name  string  `yaml:"name"`
	Tag   PairTag `yaml:"tag"`
	// Particles names the two outgoing particles, ejectile first.
	Particles [2]string `yaml:"particles,flow"`
	// Q is the reaction Q-value in eV.
	Q float64 `yaml:"Q,omitempty"`
	// ScatteringRadius and EffectiveRadius are in 10 fm; zero means unset.
	ScatteringRadius  float64 `yaml:"scatteringRadius,omitempty"`
	EffectiveRadius   float64 `yaml:"effectiveRadius,omitempty"`
	BoundaryCondition float64 `yaml:"boundaryCondition,omitempty"`
}

// Override replaces pair radii inside one spin group.
type Override struct {
	ScatteringRadius float64 `yaml:"scatteringRadius,omitempty"`
	EffectiveRadius  float64 `yaml:"effectiveRadius,omitempty"`
}

// Column is one width column of a spin group.
type Column struct {
	Pair        string  `yaml:"pair"`
	L           int     `yaml:"L"`
	ChannelSpin float64 `yaml:"channelSpin"`
}

// SpinGroupRow is one resonance of a spin group: widths align with Columns.
type SpinGroupRow struct {
	Energy float64   `yaml:"energy"`
	Widths []float64 `yaml:"widths,flow"`
}

// SpinGroup is a set of resonances sharing J and parity.
type SpinGroup struct {
	J         float64             `yaml:"J"`
	Columns   []Column            `yaml:"columns"`
	Rows      []SpinGroupRow      `yaml:"rows"`
	Overrides map[string]Override `yaml:"overrides,omitempty"`
}

// UnresolvedRegion holds average parameters per (L, J).
type UnresolvedRegion struct {
	LowerBound        float64          `yaml:"lowerBound"`
	UpperBound        float64          `yaml:"upperBound"`
	ScatteringRadius  float64          `yaml:"scatteringRadius"`
	Interpolation     xs.Interpolation `yaml:"interpolation,omitempty"`
	SelfShieldingOnly bool             `yaml:"selfShieldingOnly,omitempty"`
	LValues           []URRL           `yaml:"Lvalues"`
}

// URRL groups J sequences of one L.
type URRL struct {
	L       int    `yaml:"L"`
	JValues []URRJ `yaml:"Jvalues"`
}

// URRJ holds the average widths of one (L, J) sequence. A width given in
// Constant wins over a column of EnergyDependent.
type URRJ struct {
	J              float64        `yaml:"J"`
	NeutronDOF     float64        `yaml:"neutronDOF"`
	FissionDOF     float64        `yaml:"fissionDOF,omitempty"`
	CompetitiveDOF float64        `yaml:"competitiveDOF,omitempty"`
	Constant       AverageWidths  `yaml:"constant,omitempty"`
	Table          *URRWidthTable `yaml:"energyDependent,omitempty"`
}

// AverageWidths are constant average parameters in eV; nil means absent.
type AverageWidths struct {
	LevelSpacing     *float64 `yaml:"levelSpacing,omitempty"`
	NeutronWidth     *float64 `yaml:"neutronWidth,omitempty"`
	CaptureWidth     *float64 `yaml:"captureWidth,omitempty"`
	FissionWidthA    *float64 `yaml:"fissionWidthA,omitempty"`
	CompetitiveWidth *float64 `yaml:"competitiveWidth,omitempty"`
}

// URRWidthTable tabulates average parameters against energy.
type URRWidthTable struct {
	Energies         []float64 `yaml:"energies,flow"`
	LevelSpacing     []float64 `yaml:"levelSpacing,flow,omitempty"`
	NeutronWidth     []float64 `yaml:"neutronWidth,flow,omitempty"`
	CaptureWidth     []float64 `yaml:"captureWidth,flow,omitempty"`
	FissionWidthA    []float64 `yaml:"fissionWidthA,flow,omitempty"`
	CompetitiveWidth []float64 `yaml:"competitiveWidth,flow,omitempty"`
}

// LoadEvaluation reads and validates an evaluation from a YAML file.
func LoadEvaluation(path string) (*Evaluation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadEvaluation: %w", err)
	}

	return ParseEvaluation(data)
}

// ParseEvaluation decodes, completes and validates an evaluation.
func ParseEvaluation(data []byte) (*Evaluation, error) {
	var ev Evaluation
	if err := yaml.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("ParseEvaluation: %w", err)
	}
	ev.applyDefaults()
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	return &ev, nil
}

func (ev *Evaluation) applyDefaults() {
	if ev.Projectile.Name == "" {
		ev.Projectile.Name = "n"
	}
	if ev.Projectile.Mass == 0 && ev.Projectile.Name == "n" {
		ev.Projectile.Mass = NeutronMass
	}
	if ev.Projectile.Spin == 0 && ev.Projectile.Name == "n" {
		ev.Projectile.Spin = 0.5
	}
}

// Validate checks the structural invariants the formalisms rely on.
func (ev *Evaluation) Validate() error {
	if len(ev.Resolved) == 0 && ev.Unresolved == nil {
		return resonanceErrorf("Validate", ErrNoRegion)
	}
	if ev.Target.Mass <= 0 || ev.Projectile.Mass <= 0 {
		return resonanceErrorf("Validate", fmt.Errorf("%w: projectile and target need positive masses", ErrUnknownParticle))
	}
	for i := range ev.Resolved {
		if err := ev.validateResolved(&ev.Resolved[i]); err != nil {
			return fmt.Errorf("Validate: resolved[%d]: %w", i, err)
		}
	}
	if u := ev.Unresolved; u != nil && u.LowerBound >= u.UpperBound {
		return fmt.Errorf("Validate: unresolved: %w", ErrBadBounds)
	}

	return nil
}

func (ev *Evaluation) validateResolved(r *ResolvedRegion) error {
	if !r.Formalism.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownFormalism, r.Formalism)
	}
	if r.LowerBound >= r.UpperBound {
		return ErrBadBounds
	}
	if r.Formalism != RMatrixLimited {
		if len(r.Resonances) == 0 {
			return ErrEmptyTable
		}

		return nil
	}
	if r.RMatrix == nil || len(r.RMatrix.SpinGroups) == 0 {
		return ErrEmptyTable
	}
	for _, p := range r.RMatrix.Pairs {
		for _, name := range p.Particles {
			if _, err := ev.Particle(name); err != nil {
				return fmt.Errorf("pair %q: %w", p.Name, err)
			}
		}
	}
	for gi, sg := range r.RMatrix.SpinGroups {
		for _, c := range sg.Columns {
			if r.RMatrix.Pair(c.Pair) == nil {
				return fmt.Errorf("spin group %d: %w %q", gi, ErrUnknownPair, c.Pair)
			}
		}
		for _, row := range sg.Rows {
			if len(row.Widths) != len(sg.Columns) {
				return fmt.Errorf("spin group %d at %g eV: %w", gi, row.Energy, ErrColumnMismatch)
			}
		}
	}

	return nil
}

// Pair returns the particle pair with the given name, or nil.
func (rm *RMatrix) Pair(name string) *ParticlePair {
	for i := range rm.Pairs {
		if rm.Pairs[i].Name == name {
			return &rm.Pairs[i]
		}
	}

	return nil
}

// Particle looks a particle up by name. Photons are known implicitly, and a
// level suffix ("Fe56_e1") resolves to the level's spin.
func (ev *Evaluation) Particle(name string) (Particle, error) {
	if name == "gamma" || name == "photon" {
		return Particle{Name: name, Spin: 1}, nil
	}
	all := make([]Particle, 0, len(ev.Particles)+2)
	all = append(all, ev.Projectile, ev.Target)
	all = append(all, ev.Particles...)
	for _, p := range all {
		if p.Name == name {
			return p, nil
		}
	}
	for _, p := range all {
		for lvl, s := range p.Levels {
			if p.Name+"_"+lvl == name {
				q := p
				q.Name, q.Spin = name, s

				return q, nil
			}
		}
	}

	return Particle{}, fmt.Errorf("%w %q", ErrUnknownParticle, name)
}

// MassRatio is the target-to-projectile mass ratio (AWRI for neutrons).
func (ev *Evaluation) MassRatio() float64 {
	return ev.Target.Mass / ev.Projectile.Mass
}

// EntranceName is the "projectile + target" pair name.
func (ev *Evaluation) EntranceName() string {
	return ev.Projectile.Name + " + " + ev.Target.Name
}

// Region returns resolved region i.
func (ev *Evaluation) Region(i int) (*ResolvedRegion, error) {
	if i < 0 || i >= len(ev.Resolved) {
		return nil, fmt.Errorf("Region(%d): %w", i, ErrRegionIndex)
	}

	return &ev.Resolved[i], nil
}
