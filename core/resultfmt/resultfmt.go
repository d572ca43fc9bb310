// Package resultfmt encodes parse outcomes for output: JSON, YAML, canonical CBOR
// and plain text.
//
// The canonical CBOR form is deterministic, so equal results encode to equal bytes.
// Digest hashes that form with BLAKE2b-256 and is stable across runs.
package resultfmt

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat converts a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of text, json, yaml, cbor)", name)
}

// Result is the encodable outcome of one parse.
type Result struct {
	Grammar  string `json:"grammar" yaml:"grammar"`
	Match    bool   `json:"match" yaml:"match"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
	Consumed int    `json:"consumed" yaml:"consumed"` // characters
	Residual string `json:"residual" yaml:"residual"`
	Digest   string `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Outcome is the part of a parse status a Result is built from.
type Outcome interface {
	Match() bool
	HasValue() bool
}

// New builds a Result. value is only recorded when the outcome carries one.
func New(grammar string, outcome Outcome, value any, consumed int, residual string) Result {
	r := Result{
		Grammar:  grammar,
		Match:    outcome.Match(),
		Consumed: consumed,
		Residual: residual,
	}
	if outcome.Match() && outcome.HasValue() {
		r.Value = value
	}
	return r
}

// MarshalCanonical encodes r, without its digest, as canonical CBOR.
func MarshalCanonical(r Result) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	r.Digest = ""
	data, err := encMode.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Digest returns the hex BLAKE2b-256 hash of the canonical form of r.
func Digest(r Result) (string, error) {
	data, err := MarshalCanonical(r)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Seal returns r with its Digest set.
func Seal(r Result) (Result, error) {
	digest, err := Digest(r)
	if err != nil {
		return Result{}, err
	}
	r.Digest = digest
	return r, nil
}

// Encode writes r to w in format f.
func Encode(w io.Writer, r Result, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("JSON encoding failed: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("YAML encoding failed: %w", err)
		}
		return enc.Close()

	case FormatCBOR:
		data, err := MarshalCanonical(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err

	case FormatText, "":
		return encodeText(w, r)
	}
	return fmt.Errorf("unknown format %q", f)
}

func encodeText(w io.Writer, r Result) error {
	if !r.Match {
		_, err := fmt.Fprintf(w, "%s: no match\n", r.Grammar)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: match, %d characters consumed\n", r.Grammar, r.Consumed)
	if r.Value != nil {
		fmt.Fprintf(&b, "value: %v\n", r.Value)
	}
	if r.Residual != "" {
		fmt.Fprintf(&b, "residual: %q\n", r.Residual)
	}
	if r.Digest != "" {
		fmt.Fprintf(&b, "digest: %s\n", r.Digest)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
