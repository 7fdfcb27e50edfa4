package cmpent

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/section"
)

// Pair is a compression parameter together with its spillover threshold.
type Pair struct {
	Par   uint32 `json:"par"`
	Spill uint32 `json:"spill"`
}

// Config holds every header value of an entity to build.
//
// Parameters that do not belong to the header variant of DataType must be left
// zero. Values are range checked against their field widths by Build.
type Config struct {
	DataType format.DataType        `json:"-"`
	Raw      bool                   `json:"raw,omitempty"`
	CmpMode  format.CompressionMode `json:"-"`

	OriginalSize uint32            `json:"original_size"`
	StartTime    section.Timestamp `json:"start_time"`
	EndTime      section.Timestamp `json:"end_time"`

	ModelValue         uint32 `json:"model_value,omitempty"`
	ModelID            uint32 `json:"model_id,omitempty"`
	ModelCounter       uint32 `json:"model_counter,omitempty"`
	MaxUsedBitsVersion uint32 `json:"max_used_bits_version,omitempty"`
	LossyCmpPar        uint32 `json:"lossy_cmp_par,omitempty"`

	// imagette and adaptive imagette
	GolombPar uint32 `json:"golomb_par,omitempty"`
	Spill     uint32 `json:"spill,omitempty"`

	// adaptive imagette only
	AP1 Pair `json:"ap1,omitempty"`
	AP2 Pair `json:"ap2,omitempty"`

	// non-imagette only; NonIma[0] is pair 1
	NonIma [section.NonImaPairCount]Pair `json:"non_ima,omitempty"`
}

type fieldValue struct {
	field section.Field
	value uint32
}

// genericValues lists the range-checked generic header parameters.
func (c *Config) genericValues() []fieldValue {
	return []fieldValue{
		{section.FieldOriginalSize, c.OriginalSize},
		{section.FieldModelValue, c.ModelValue},
		{section.FieldModelID, c.ModelID},
		{section.FieldModelCounter, c.ModelCounter},
		{section.FieldMaxUsedBitsVersion, c.MaxUsedBitsVersion},
		{section.FieldLossyCmpPar, c.LossyCmpPar},
	}
}

// specificValues lists every specific header parameter, across all variants.
func (c *Config) specificValues() []fieldValue {
	vals := []fieldValue{
		{section.FieldImaSpill, c.Spill},
		{section.FieldImaGolombPar, c.GolombPar},
		{section.FieldAP1Spill, c.AP1.Spill},
		{section.FieldAP1GolombPar, c.AP1.Par},
		{section.FieldAP2Spill, c.AP2.Spill},
		{section.FieldAP2GolombPar, c.AP2.Par},
	}
	for i, p := range c.NonIma {
		spill, _ := section.NonImaSpillField(i + 1)
		par, _ := section.NonImaCmpParField(i + 1)
		vals = append(vals, fieldValue{spill, p.Spill}, fieldValue{par, p.Par})
	}

	return vals
}

// Variant resolves the specific header variant the configuration selects.
func (c *Config) Variant() (section.Variant, error) {
	v, err := section.ResolveVariant(c.DataType, c.CmpMode)
	if err != nil {
		return section.VariantNone, wrapVariantError(err)
	}

	return v, nil
}

// Validate checks the configuration without building an entity.
//
// Returns:
//   - error: ErrUnsupportedDataType, ErrUnsupportedCmpMode, ErrFieldOutOfRange for a
//     value wider than its field, or ErrFieldNotApplicable for a non-zero parameter
//     outside the resolved variant
func (c *Config) Validate() error {
	v, err := c.Variant()
	if err != nil {
		return err
	}

	return c.validate(v)
}

func (c *Config) validate(v section.Variant) error {
	for _, fv := range c.genericValues() {
		if err := fv.field.Check(fv.value); err != nil {
			return err
		}
	}

	for _, fv := range c.specificValues() {
		if !fv.field.AppliesTo(v) {
			if fv.value != 0 {
				return errs.NewFieldError(fv.field.Name, fv.field.Offset, errs.ErrFieldNotApplicable)
			}

			continue
		}
		if err := fv.field.Check(fv.value); err != nil {
			return err
		}
	}

	return nil
}

// configFile is the YAML shape of a Config, with the enumerations written by name.
type configFile struct {
	DataType string `json:"data_type"`
	CmpMode  string `json:"cmp_mode"`
	Config
}

// ParseConfigYAML decodes a compression configuration file.
//
// The data type and compression mode are given by name ("DATA_TYPE_IMAGETTE" or
// "imagette", "MODE_DIFF_ZERO" or "diff_zero") or by number. The result is validated
// with Config.Validate.
func ParseConfigYAML(data []byte) (Config, error) {
	var f configFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return Config{}, fmt.Errorf("decode compression config: %w", err)
	}

	dataType, ok := format.ParseDataType(f.DataType)
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedDataType, f.DataType)
	}
	mode, ok := format.ParseCompressionMode(f.CmpMode)
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedCmpMode, f.CmpMode)
	}

	cfg := f.Config
	cfg.DataType = dataType
	cfg.CmpMode = mode
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// EncodeYAML writes the configuration in the format ParseConfigYAML reads.
func (c Config) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(configFile{
		DataType: c.DataType.String(),
		CmpMode:  c.CmpMode.String(),
		Config:   c,
	})
}
