package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/introspect"
	"github.com/ErkEntonio/avendish/pkg/framework/process"
)

var (
	// ErrNoName is returned for a record without a display name.
	ErrNoName = errors.New("registry: record has no name")
	// ErrMissingOperation is returned when a record's protocol needs a
	// processing operation but none was declared.
	ErrMissingOperation = errors.New("registry: record declares audio ports but no processing operation")
)

// uidNamespace seeds the deterministic UID derivation. Fixed forever; the
// same record ID always yields the same UID.
var uidNamespace = uuid.MustParse("6a5bd53e-9aa6-44a5-a17b-2faa17a2b616")

// Capabilities caches one side's classifications, computed once at
// registration and immutable thereafter. All instances of the record share
// them read-only.
type Capabilities struct {
	All            *introspect.Introspection
	Parameters     *introspect.Introspection
	AudioSamples   *introspect.Introspection
	AudioBuffers   *introspect.Introspection
	MIDI           *introspect.Introspection
	DynamicMIDI    *introspect.Introspection
	RawMIDI        *introspect.Introspection
	Textures       *introspect.Introspection
	Callbacks      *introspect.Introspection
	Soundfiles     *introspect.Introspection
	SampleAccurate *introspect.Introspection

	// ValuePorted is the subset that gets one discrete-value port per
	// field: parameters, plain values, soundfiles on the input side,
	// callbacks on the output side.
	ValuePorted *introspect.Introspection
}

func classifySide(s *field.Schema, output bool) Capabilities {
	return Capabilities{
		All:            introspect.Classify(s, func(*field.Field) bool { return true }),
		Parameters:     introspect.Classify(s, introspect.IsParameter),
		AudioSamples:   introspect.Classify(s, introspect.IsAudioSample),
		AudioBuffers:   introspect.Classify(s, introspect.IsAudioBuffer),
		MIDI:           introspect.Classify(s, introspect.IsMIDI),
		DynamicMIDI:    introspect.Classify(s, introspect.IsDynamicMIDI),
		RawMIDI:        introspect.Classify(s, introspect.IsRawMIDI),
		Textures:       introspect.Classify(s, introspect.IsTexture),
		Callbacks:      introspect.Classify(s, introspect.IsCallback),
		Soundfiles:     introspect.Classify(s, introspect.IsSoundfile),
		SampleAccurate: introspect.Classify(s, introspect.IsSampleAccurate),
		ValuePorted: introspect.Classify(s, func(f *field.Field) bool {
			if output {
				return introspect.IsValue(f) || introspect.IsCallback(f)
			}
			return introspect.IsValue(f) || introspect.IsSoundfile(f)
		}),
	}
}

// Option customizes registration.
type Option func(*Registered)

// WithLogger attaches a logger for registration and lifecycle diagnostics.
// Nothing logs on the audio path. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registered) {
		if log != nil {
			r.log = log
		}
	}
}

// Registered is a validated record type: schemas, cached classifications,
// selected protocol, and the bound operation. It is immutable after
// Register returns and shared read-only by all of its instances.
type Registered struct {
	rec      Record
	protocol process.Protocol
	in       Capabilities
	out      Capabilities
	op       process.Op
	log      *zap.Logger
}

// Register validates the record and computes everything that must never be
// recomputed per processing call. Every structural fault surfaces here,
// before any instance exists.
func Register(rec Record, opts ...Option) (*Registered, error) {
	if rec.Name == "" {
		return nil, ErrNoName
	}
	if rec.Inputs == nil {
		rec.Inputs = field.Empty
	}
	if rec.Outputs == nil {
		rec.Outputs = field.Empty
	}
	if rec.ID == "" {
		rec.ID = sanitizeSymbol(rec.Name)
	}

	protocol, err := process.Select(rec.Inputs, rec.Outputs)
	if err != nil {
		return nil, fmt.Errorf("registry: %q: %w", rec.Name, err)
	}

	op := rec.Ops.resolve()
	if op == nil && protocol != process.MessageOnly {
		return nil, fmt.Errorf("%w: %q (%s)", ErrMissingOperation, rec.Name, protocol)
	}

	r := &Registered{
		rec:      rec,
		protocol: protocol,
		in:       classifySide(rec.Inputs, false),
		out:      classifySide(rec.Outputs, true),
		op:       op,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.log.Info("registered processor",
		zap.String("name", rec.Name),
		zap.String("symbol", r.Symbol()),
		zap.Stringer("protocol", protocol),
		zap.Int("inputs", rec.Inputs.Count()),
		zap.Int("outputs", rec.Outputs.Count()),
		zap.Int("parameters", r.in.Parameters.Size()),
	)
	return r, nil
}

// Name returns the record's display name.
func (r *Registered) Name() string { return r.rec.Name }

// Protocol returns the selected processing protocol.
func (r *Registered) Protocol() process.Protocol { return r.protocol }

// Inputs returns the cached input-side classifications.
func (r *Registered) Inputs() Capabilities { return r.in }

// Outputs returns the cached output-side classifications.
func (r *Registered) Outputs() Capabilities { return r.out }

// Symbol returns the host registration symbol: CName when declared,
// otherwise the display name with unsupported characters replaced.
func (r *Registered) Symbol() string {
	if r.rec.CName != "" {
		return r.rec.CName
	}
	return sanitizeSymbol(r.rec.Name)
}

// UID derives the 16-byte unique identifier from the record ID. The
// derivation is deterministic: the same ID always produces the same UID.
func (r *Registered) UID() [16]byte {
	return [16]byte(uuid.NewSHA1(uidNamespace, []byte(r.rec.ID)))
}

func sanitizeSymbol(name string) string {
	out := []byte(name)
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
