package commands

import (
	"bytes"
	"encoding/json"
	"io"

	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type configView struct {
	Location    string              `json:"location,omitempty" yaml:"location,omitempty"`
	Path        string              `json:"path" yaml:"path"`
	Exists      bool                `json:"exists" yaml:"exists"`
	Name        string              `json:"name,omitempty" yaml:"name,omitempty"`
	Main        string              `json:"main,omitempty" yaml:"main,omitempty"`
	Type        domain.PackageType  `json:"type" yaml:"type"`
	Exports     *targetView         `json:"exports,omitempty" yaml:"exports,omitempty"`
	Imports     *targetView         `json:"imports,omitempty" yaml:"imports,omitempty"`
	Termination string              `json:"termination,omitempty" yaml:"termination,omitempty"`
	Probes      []domain.ScopeProbe `json:"probes,omitempty" yaml:"probes,omitempty"`
}

func newConfigView(cfg *domain.PackageConfig) configView {
	v := configView{
		Path:   cfg.Path(),
		Exists: cfg.Exists(),
		Name:   cfg.Name(),
		Main:   cfg.Main(),
		Type:   cfg.Type(),
	}
	if t, ok := cfg.Exports(); ok {
		v.Exports = &targetView{t}
	}
	if t, ok := cfg.Imports(); ok {
		v.Imports = &targetView{t}
	}
	return v
}

// targetView encodes a domain.Target with map keys in document order.
type targetView struct {
	domain.Target
}

// MarshalJSON implements json.Marshaler.
func (v targetView) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTargetJSON(&buf, v.Target); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTargetJSON(buf *bytes.Buffer, t domain.Target) error {
	switch t.Kind {
	case domain.TargetNull:
		buf.WriteString("null")
	case domain.TargetString:
		b, err := json.Marshal(t.Value)
		if err != nil {
			return err
		}
		buf.Write(b)
	case domain.TargetInvalid:
		buf.WriteString(t.Raw)
	case domain.TargetArray:
		buf.WriteByte('[')
		for i, item := range t.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeTargetJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case domain.TargetMap:
		buf.WriteByte('{')
		for i, e := range t.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeTargetJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v targetView) MarshalYAML() (any, error) {
	return targetNode(v.Target), nil
}

func targetNode(t domain.Target) *yaml.Node {
	switch t.Kind {
	case domain.TargetString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Value}
	case domain.TargetInvalid:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: t.Raw}
	case domain.TargetArray:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range t.Items {
			n.Content = append(n.Content, targetNode(item))
		}
		return n
	case domain.TargetMap:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range t.Entries {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				targetNode(e.Value),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func encode(w io.Writer, format string, views []configView) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(views)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return zerr.Wrap(err, "failed to encode output")
		}
		return enc.Close()
	default:
		return domain.ErrUnknownOutputFormat
	}
}
