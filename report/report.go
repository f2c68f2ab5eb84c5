package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/slashsum/pipeline"
)

// Format selects a rendering.
type Format string

const (
	// FormatText is the aligned, line-oriented report.
	FormatText Format = "text"

	// FormatJSON is the indented JSON document.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for a format other than text or json.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat resolves a format name; the empty string selects text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// textLayout orders the report lines. Each tag expands to complete
// lines.
const textLayout = "{{file}}{{size}}{{digests}}{{time}}"

var textTemplate = fasttemplate.New(textLayout, "{{", "}}")

const (
	labelFile = "File"
	labelSize = "Size"
	labelTime = "Time"
)

// Text renders o as one "Label: value" line per field, values
// aligned on a common column, digests in configured order. The result
// ends with a newline.
func Text(o *pipeline.Outcome) (string, error) {
	const errCtx = "rendering text report"

	width := len(labelFile)

	for _, res := range o.Digests {
		width = max(width, len(res.Algorithm.Label()))
	}

	// label plus colon, then one space before the value
	width++

	line := func(w io.Writer, label, value string) (int, error) {
		return fmt.Fprintf(w, "%-*s %s\n", width, label+":", value)
	}

	out, err := textTemplate.ExecuteFuncStringWithErr(
		func(w io.Writer, tag string) (int, error) {
			switch tag {
			case "file":
				return line(w, labelFile, o.Path)

			case "size":
				return line(w, labelSize, FormatSize(reportedSize(o)))

			case "digests":
				var total int

				for _, res := range o.Digests {
					n, err := line(w, res.Algorithm.Label(), res.Value)
					total += n

					if err != nil {
						return total, err
					}
				}

				return total, nil

			case "time":
				return line(w, labelTime, FormatElapsed(o.Elapsed))

			default:
				return 0, fmt.Errorf("unknown tag %q", tag)
			}
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// reportedSize is the metadata size, or the bytes actually read when
// the size was unknown.
func reportedSize(o *pipeline.Outcome) uint64 {
	if o.Size < 0 {
		return uint64(max(o.BytesRead, 0))
	}

	return uint64(o.Size)
}

type jsonDigest struct {
	Algorithm string `json:"algorithm"`
	Label     string `json:"label"`
	Value     string `json:"value"`
}

type jsonReport struct {
	File      string       `json:"file"`
	Size      int64        `json:"size"`
	SizeText  string       `json:"size_text"`
	Digests   []jsonDigest `json:"digests"`
	ElapsedNS int64        `json:"elapsed_ns"`
	Elapsed   string       `json:"elapsed"`
}

// JSON renders o as an indented JSON document ending with a newline.
// Digests keep their configured order.
func JSON(o *pipeline.Outcome) ([]byte, error) {
	const errCtx = "rendering json report"

	doc := jsonReport{
		File:      o.Path,
		Size:      int64(reportedSize(o)),
		SizeText:  FormatSize(reportedSize(o)),
		Digests:   make([]jsonDigest, 0, len(o.Digests)),
		ElapsedNS: o.Elapsed.Nanoseconds(),
		Elapsed:   FormatElapsed(o.Elapsed),
	}

	for _, res := range o.Digests {
		doc.Digests = append(doc.Digests, jsonDigest{
			Algorithm: res.Algorithm.String(),
			Label:     res.Algorithm.Label(),
			Value:     res.Value,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return append(data, '\n'), nil
}

// Render produces o in the requested format.
func Render(o *pipeline.Outcome, format Format) (string, error) {
	const errCtx = "rendering report"

	switch format {
	case "", FormatText:
		out, err := Text(o)
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		return out, nil

	case FormatJSON:
		data, err := JSON(o)
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		return string(data), nil

	default:
		return "", fmt.Errorf(
			"%s: %w: %q", errCtx, ErrUnknownFormat, format,
		)
	}
}
