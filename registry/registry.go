// Package registry maps textual code specifications such as "gamma",
// "rice(3)" or "startstop(0-1-2-3-3-3-3)" to encoder/decoder pairs over a
// bitstream.Stream. The default registry is populated during package
// initialization and is read-only thereafter.
package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacemeshos/bitcode/bitstream"
	"github.com/spacemeshos/bitcode/codec"
	"github.com/spacemeshos/bitcode/shared"
)

// Code is a parsed code specification bound to its parameter.
type Code struct {
	// Name is the canonical registered name.
	Name string
	// Spec is the normalized textual specification, parameter included.
	Spec string

	enc codec.Encoder
	dec codec.Decoder
}

// Put encodes a single value.
func (c *Code) Put(s *bitstream.Stream, v uint64) error { return c.enc(s, v) }

// Get decodes a single value.
func (c *Code) Get(s *bitstream.Stream) (uint64, error) { return c.dec(s) }

// PutAll encodes vals in order.
func (c *Code) PutAll(s *bitstream.Stream, vals []uint64) error {
	return codec.PutEach(s, c.enc, vals)
}

// GetAll decodes count values; a negative count reads until the end of
// the stream.
func (c *Code) GetAll(s *bitstream.Stream, count int) ([]uint64, error) {
	return codec.GetEach(s, c.dec, count)
}

type entry struct {
	plain    func() (codec.Encoder, codec.Decoder)
	withInt  func(int64) (codec.Encoder, codec.Decoder, error)
	withList func([]uint) (codec.Encoder, codec.Decoder, error)
}

// Registry holds named code constructors. Names are case-insensitive.
type Registry struct {
	codes map[string]entry
	names []string
}

func NewRegistry() *Registry {
	return &Registry{codes: make(map[string]entry)}
}

// Register adds a parameterless code under the given name.
func (r *Registry) Register(name string, enc codec.Encoder, dec codec.Decoder) {
	r.add(name, entry{plain: func() (codec.Encoder, codec.Decoder) { return enc, dec }})
}

// RegisterInt adds a single-integer-parameter code under the given name.
func (r *Registry) RegisterInt(name string, build func(int64) (codec.Encoder, codec.Decoder, error)) {
	r.add(name, entry{withInt: build})
}

// RegisterList adds a code parameterized by a dash-separated list of
// non-negative integers under the given name.
func (r *Registry) RegisterList(name string, build func([]uint) (codec.Encoder, codec.Decoder, error)) {
	r.add(name, entry{withList: build})
}

func (r *Registry) add(name string, e entry) {
	name = strings.ToLower(name)
	if _, ok := r.codes[name]; !ok {
		r.names = append(r.names, name)
	}
	r.codes[name] = e
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Parse resolves a textual code specification to a Code.
func (r *Registry) Parse(spec string) (*Code, error) {
	name := strings.ToLower(strings.TrimSpace(spec))
	var params string
	hasParams := false
	if i := strings.IndexByte(name, '('); i >= 0 {
		if !strings.HasSuffix(name, ")") {
			return nil, fmt.Errorf("%w: malformed specification %q", shared.ErrBadArgument, spec)
		}
		params = name[i+1 : len(name)-1]
		name = name[:i]
		hasParams = true
	}
	e, ok := r.codes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownCode, name)
	}

	switch {
	case e.plain != nil:
		if hasParams {
			return nil, fmt.Errorf("%w: code %q takes no parameter", shared.ErrBadArgument, name)
		}
		enc, dec := e.plain()
		return &Code{Name: name, Spec: name, enc: enc, dec: dec}, nil

	case e.withInt != nil:
		if !hasParams {
			return nil, fmt.Errorf("%w: code %q requires a parameter", shared.ErrBadArgument, name)
		}
		param, err := strconv.ParseInt(params, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid parameter %q for code %q", shared.ErrBadArgument, params, name)
		}
		enc, dec, err := e.withInt(param)
		if err != nil {
			return nil, err
		}
		return &Code{Name: name, Spec: fmt.Sprintf("%s(%d)", name, param), enc: enc, dec: dec}, nil

	default:
		if !hasParams {
			return nil, fmt.Errorf("%w: code %q requires a parameter list", shared.ErrBadArgument, name)
		}
		fields := strings.Split(params, "-")
		list := make([]uint, len(fields))
		for i, field := range fields {
			p, err := strconv.ParseUint(field, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid parameter %q for code %q", shared.ErrBadArgument, field, name)
			}
			list[i] = uint(p)
		}
		enc, dec, err := e.withList(list)
		if err != nil {
			return nil, err
		}
		return &Code{Name: name, Spec: fmt.Sprintf("%s(%s)", name, params), enc: enc, dec: dec}, nil
	}
}

// Default is the registry holding the built-in codes.
var Default = NewRegistry()

// Parse resolves a specification against the default registry.
func Parse(spec string) (*Code, error) {
	return Default.Parse(spec)
}

func init() {
	Default.Register("unary", codec.PutUnary, codec.GetUnary)
	Default.Register("unary1", codec.PutUnary1, codec.GetUnary1)
	Default.Register("gamma", codec.PutGamma, codec.GetGamma)
	Default.Register("delta", codec.PutDelta, codec.GetDelta)
	Default.Register("omega", codec.PutOmega, codec.GetOmega)
	Default.Register("levenstein", codec.PutLevenstein, codec.GetLevenstein)
	Default.Register("evenrodeh", codec.PutEvenRodeh, codec.GetEvenRodeh)
	Default.Register("fib", codec.PutFib, codec.GetFib)
	Default.Register("fibonacci", codec.PutFib, codec.GetFib)
	Default.Register("ber", codec.PutBER, codec.GetBER)
	Default.Register("varint", codec.PutVarint, codec.GetVarint)

	Default.RegisterInt("golomb", func(m int64) (codec.Encoder, codec.Decoder, error) {
		if m < 1 {
			return nil, nil, fmt.Errorf("%w: golomb parameter must be >= 1, given: %d", shared.ErrBadArgument, m)
		}
		enc := func(s *bitstream.Stream, v uint64) error { return codec.PutGolomb(s, uint64(m), v) }
		dec := func(s *bitstream.Stream) (uint64, error) { return codec.GetGolomb(s, uint64(m)) }
		return enc, dec, nil
	})
	Default.RegisterInt("rice", func(k int64) (codec.Encoder, codec.Decoder, error) {
		if k < 0 || k > 64 {
			return nil, nil, fmt.Errorf("%w: rice parameter must be in [0, 64], given: %d", shared.ErrBadArgument, k)
		}
		enc := func(s *bitstream.Stream, v uint64) error { return codec.PutRice(s, uint(k), v) }
		dec := func(s *bitstream.Stream) (uint64, error) { return codec.GetRice(s, uint(k)) }
		return enc, dec, nil
	})
	Default.RegisterInt("gammagolomb", func(m int64) (codec.Encoder, codec.Decoder, error) {
		if m < 1 {
			return nil, nil, fmt.Errorf("%w: gammagolomb parameter must be >= 1, given: %d", shared.ErrBadArgument, m)
		}
		enc := func(s *bitstream.Stream, v uint64) error { return codec.PutGammaGolomb(s, uint64(m), v) }
		dec := func(s *bitstream.Stream) (uint64, error) { return codec.GetGammaGolomb(s, uint64(m)) }
		return enc, dec, nil
	})
	Default.RegisterInt("expgolomb", func(k int64) (codec.Encoder, codec.Decoder, error) {
		if k < 0 || k > 64 {
			return nil, nil, fmt.Errorf("%w: expgolomb parameter must be in [0, 64], given: %d", shared.ErrBadArgument, k)
		}
		enc := func(s *bitstream.Stream, v uint64) error { return codec.PutExpGolomb(s, uint(k), v) }
		dec := func(s *bitstream.Stream) (uint64, error) { return codec.GetExpGolomb(s, uint(k)) }
		return enc, dec, nil
	})
	Default.RegisterList("startstop", func(steps []uint) (codec.Encoder, codec.Decoder, error) {
		ss, err := codec.NewStartStop(steps)
		if err != nil {
			return nil, nil, err
		}
		return ss.Put, ss.Get, nil
	})
}
