package domain

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DecodeConfig builds the Config variant for t from a loosely typed data bag,
// starting from the type defaults. Keys the variant does not know are ignored,
// since canvases tend to stash their own bookkeeping in the same bag.
func DecodeConfig(t NodeType, data map[string]any) (Config, error) {
	base, err := DefaultConfig(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, t)
	}
	return Overlay(base, data)
}

// Overlay overlays partial onto cfg and validates the result. cfg itself
// is never modified; on failure the caller keeps its previous value.
func Overlay(cfg Config, partial map[string]any) (Config, error) {
	if cfg == nil {
		return nil, ErrInvalidConfiguration
	}

	target := reflect.New(reflect.TypeOf(cfg))
	target.Elem().Set(reflect.ValueOf(cfg))

	if len(partial) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           target.Interface(),
			WeaklyTypedInput: true,
			TagName:          "mapstructure",
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(partial); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfiguration, cfg.Type(), err)
		}
	}

	merged := target.Elem().Interface().(Config)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// ConfigData flattens cfg into the wire data bag, keyed by field tag.
func ConfigData(cfg Config) map[string]any {
	out := map[string]any{}
	if cfg == nil {
		return out
	}
	// Decoding a flat struct of strings and ints into a map cannot fail.
	_ = mapstructure.Decode(cfg, &out)
	return out
}
