package config

import (
	"fmt"
	"strings"
)

const maxTextSourceDisplayLen = 12

// BytesSourceType tells where raw rule text comes from.
type BytesSourceType uint16

const (
	// BytesSourceTypeText is an inline YAML block.
	BytesSourceTypeText BytesSourceType = iota + 1

	// BytesSourceTypeHttp is an HTTP(S) URL.
	BytesSourceTypeHttp

	// BytesSourceTypeFile is a local file path.
	BytesSourceTypeFile
)

type BytesSource struct {
	Type BytesSourceType
	From string
}

func (s BytesSource) String() string {
	switch s.Type {
	case BytesSourceTypeText:
		break

	case BytesSourceTypeHttp:
		return s.From

	case BytesSourceTypeFile:
		return fmt.Sprintf("file://%s", s.From)

	default:
		return fmt.Sprintf("unknown source (%d: %s)", s.Type, s.From)
	}

	text := s.From
	truncated := false

	if idx := strings.IndexRune(text, '\n'); idx != -1 {
		text = text[:idx] // first line only
		truncated = true
	}

	if len(text) > maxTextSourceDisplayLen { // truncate
		text = text[:maxTextSourceDisplayLen]
		truncated = true
	}

	if truncated {
		return fmt.Sprintf("%s...", text)
	}

	return text
}

// UnmarshalYAML implements `yaml.Unmarshaler`.
func (s *BytesSource) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var input string
	if err := unmarshal(&input); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(input))
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (s *BytesSource) UnmarshalText(data []byte) error {
	source := string(data)

	switch {
	// Inline definition in YAML (with literal style Block Scalar)
	case strings.ContainsAny(source, "\n"):
		*s = BytesSource{Type: BytesSourceTypeText, From: source}

	// HTTP(S)
	case strings.HasPrefix(source, "http"):
		*s = BytesSource{Type: BytesSourceTypeHttp, From: source}

	// Probably path to a local file
	default:
		*s = BytesSource{Type: BytesSourceTypeFile, From: strings.TrimPrefix(source, "file://")}
	}

	return nil
}

// NewBytesSource parses a source definition string.
func NewBytesSource(source string) BytesSource {
	var res BytesSource

	// UnmarshalText never returns an error
	_ = res.UnmarshalText([]byte(source))

	return res
}

// TextBytesSource builds an inline source from the given lines.
func TextBytesSource(lines ...string) BytesSource {
	// ensure at least one line ending so it's parsed as an inline block
	return BytesSource{Type: BytesSourceTypeText, From: strings.Join(lines, "\n") + "\n"}
}
