// Package normalizer turns raw worksheet rows into interface profile records.
package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nconklindev/ifprofile/internal/types"
)

const (
	TokenSeparator    = ","
	ProtocolSeparator = "/"
	MaxPort           = 65535
)

// ErrEmptyPortRange is returned for a row whose port range cell is empty.
var ErrEmptyPortRange = errors.New("empty port range")

// ParseError describes a port token that could not be parsed.
type ParseError struct {
	Token  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid port token %q: %s: %v", e.Token, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid port token %q: %s", e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParsePortToken parses a "protocol/port" token and returns the port.
func ParsePortToken(token string) (int, error) {
	token = strings.TrimSpace(token)

	idx := strings.Index(token, ProtocolSeparator)
	if idx == -1 {
		return 0, &ParseError{Token: token, Reason: "missing protocol separator"}
	}

	port, err := strconv.Atoi(strings.TrimSpace(token[idx+1:]))
	if err != nil {
		return 0, &ParseError{Token: token, Reason: "port is not a number", Err: err}
	}
	if port < 0 || port > MaxPort {
		return 0, &ParseError{Token: token, Reason: fmt.Sprintf("port out of range 0-%d", MaxPort)}
	}

	return port, nil
}

// ParsePortRange reduces a comma separated list of tokens to its lowest and
// highest port.
func ParsePortRange(cell string) (int, int, error) {
	if strings.TrimSpace(cell) == "" {
		return 0, 0, ErrEmptyPortRange
	}

	from, to := 0, 0
	for i, token := range strings.Split(cell, TokenSeparator) {
		port, err := ParsePortToken(token)
		if err != nil {
			return 0, 0, err
		}
		if i == 0 || port < from {
			from = port
		}
		if i == 0 || port > to {
			to = port
		}
	}

	return from, to, nil
}

// Normalizer carries the profile name forward across the rows of a single
// worksheet. Use a new Normalizer for every worksheet.
type Normalizer struct {
	name string
}

func New() *Normalizer {
	return &Normalizer{}
}

// Normalize builds the record for row. Rows with a blank name inherit the last
// non-blank name seen by this Normalizer.
func (n *Normalizer) Normalize(row types.Row) (types.ConfigurationRecord, error) {
	if row.Name != "" {
		n.name = row.Name
	}

	from, to, err := ParsePortRange(row.PortRange)
	if err != nil {
		return types.ConfigurationRecord{}, fmt.Errorf("row %d: %w", row.Number, err)
	}

	return types.ConfigurationRecord{
		Name:                  n.name,
		InterfaceSelector:     row.InterfaceSelector,
		PortFrom:              strconv.Itoa(from),
		PortTo:                strconv.Itoa(to),
		AssociatedPolicyGroup: row.PolicyGroup,
	}, nil
}

// NormalizeRows normalizes the rows of one worksheet, stopping at the first
// error.
func NormalizeRows(rows []types.Row) ([]types.ConfigurationRecord, error) {
	n := New()
	records := make([]types.ConfigurationRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := n.Normalize(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
