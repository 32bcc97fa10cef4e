package converter

import (
	"bufio"
	"io"
	"strings"

	"github.com/nconklindev/ifprofile/internal/types"
)

const utf8BOM = "\ufeff"

// Field is one output column: its header label and how to read it from a record.
type Field struct {
	Label string
	Value func(types.ConfigurationRecord) string
}

type Schema []Field

// RecordSchema is the fixed output layout of every generated CSV file.
var RecordSchema = Schema{
	{Label: "int-profile-name", Value: func(r types.ConfigurationRecord) string { return r.Name }},
	{Label: "int-selector-name", Value: func(r types.ConfigurationRecord) string { return r.InterfaceSelector }},
	{Label: "from-port-number", Value: func(r types.ConfigurationRecord) string { return r.PortFrom }},
	{Label: "to-port-number", Value: func(r types.ConfigurationRecord) string { return r.PortTo }},
	{Label: "int-policy-group", Value: func(r types.ConfigurationRecord) string { return r.AssociatedPolicyGroup }},
}

func (s Schema) Header() []string {
	labels := make([]string, len(s))
	for i, f := range s {
		labels[i] = f.Label
	}
	return labels
}

func (s Schema) Row(r types.ConfigurationRecord) []string {
	values := make([]string, len(s))
	for i, f := range s {
		values[i] = f.Value(r)
	}
	return values
}

type CSVOptions struct {
	BOM  bool
	CRLF bool
}

// WriteCSV writes the header and one line per record. Fields are joined with
// commas as-is, without quoting.
func WriteCSV(w io.Writer, schema Schema, records []types.ConfigurationRecord, opts CSVOptions) error {
	bw := bufio.NewWriter(w)

	eol := "\n"
	if opts.CRLF {
		eol = "\r\n"
	}

	if opts.BOM {
		if _, err := bw.WriteString(utf8BOM); err != nil {
			return err
		}
	}

	if _, err := bw.WriteString(strings.Join(schema.Header(), ",") + eol); err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := bw.WriteString(strings.Join(schema.Row(rec), ",") + eol); err != nil {
			return err
		}
	}

	return bw.Flush()
}
