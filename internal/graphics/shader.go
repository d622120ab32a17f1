package graphics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Section markers of a tagged shader file
const (
	VertexOpenTag    = "//<vertex>"
	VertexCloseTag   = "//</vertex>"
	FragmentOpenTag  = "//<fragment>"
	FragmentCloseTag = "//</fragment>"
)

var (
	ErrUnterminatedSection = errors.New("unterminated shader section")
	ErrMissingSection      = errors.New("missing shader section")
)

// ShaderSource is the vertex and fragment GLSL text of one program
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// ParseShaderSource splits a tagged shader file into its vertex and fragment
// sources. Marker lines must match exactly. Lines outside any section are
// ignored; repeated sections are appended.
func ParseShaderSource(r io.Reader) (ShaderSource, error) {
	var vertex, fragment strings.Builder
	scanner := bufio.NewScanner(r)

	readSection := func(tag, closeTag string, dst *strings.Builder) error {
		for scanner.Scan() {
			line := scanner.Text()
			if line == closeTag {
				return nil
			}
			dst.WriteString(line)
			dst.WriteByte('\n')
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read shader source: %w", err)
		}
		return fmt.Errorf("unexpected EOF while parsing %s tag: %w", tag, ErrUnterminatedSection)
	}

	for scanner.Scan() {
		var err error
		switch scanner.Text() {
		case VertexOpenTag:
			err = readSection("<vertex>", VertexCloseTag, &vertex)
		case FragmentOpenTag:
			err = readSection("<fragment>", FragmentCloseTag, &fragment)
		}
		if err != nil {
			return ShaderSource{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return ShaderSource{}, fmt.Errorf("read shader source: %w", err)
	}

	if vertex.Len() == 0 {
		return ShaderSource{}, fmt.Errorf("no <vertex> source: %w", ErrMissingSection)
	}
	if fragment.Len() == 0 {
		return ShaderSource{}, fmt.Errorf("no <fragment> source: %w", ErrMissingSection)
	}

	return ShaderSource{Vertex: vertex.String(), Fragment: fragment.String()}, nil
}
