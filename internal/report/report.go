// Package report renders scans for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/baaaaaaaka/cipherrank/internal/probe"
)

// DateLayout is RFC 2822 with a numeric zone.
const DateLayout = time.RFC1123Z

const columnGap = 2

// Document is the machine-readable form of a scan.
type Document struct {
	Target      string  `json:"target" yaml:"target"`
	Date        string  `json:"date" yaml:"date"`
	Ciphersuite []Entry `json:"ciphersuite" yaml:"ciphersuite"`
}

type Entry struct {
	Cipher          string   `json:"cipher" yaml:"cipher"`
	Protocols       []string `json:"protocols" yaml:"protocols"`
	PFS             string   `json:"pfs" yaml:"pfs"`
	BenchmarkMicros *int64   `json:"benchmark_microsec,omitempty" yaml:"benchmark_microsec,omitempty"`
}

// NewDocument converts a scan. Benchmark values are only carried when the
// scan ran the benchmark pass.
func NewDocument(scan probe.Scan) Document {
	doc := Document{
		Target:      scan.Target,
		Date:        scan.StartedAt.Format(DateLayout),
		Ciphersuite: make([]Entry, 0, len(scan.Ranked)),
	}
	for _, r := range scan.Ranked {
		e := Entry{
			Cipher:    r.Cipher,
			Protocols: r.ProtocolNames(),
			PFS:       r.PFS.String(),
		}
		if scan.Benchmark {
			e.BenchmarkMicros = r.BenchmarkMicros
		}
		doc.Ciphersuite = append(doc.Ciphersuite, e)
	}
	return doc
}

// WriteJSON writes the document on a single line.
func WriteJSON(w io.Writer, scan probe.Scan) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(scan)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, scan probe.Scan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(scan)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteTable writes the ranked list as aligned columns. An empty scan still
// gets its header.
func WriteTable(w io.Writer, scan probe.Scan) error {
	header := []string{"prio", "ciphersuite", "protocols", "pfs"}
	if scan.Benchmark {
		header = append(header, "avg_handshake_microsec")
	}
	rows := [][]string{header}
	for _, r := range scan.Ranked {
		row := []string{
			strconv.Itoa(r.Rank),
			r.Cipher,
			strings.Join(r.ProtocolNames(), ","),
			r.PFS.String(),
		}
		if scan.Benchmark {
			row = append(row, micros(r.BenchmarkMicros))
		}
		rows = append(rows, row)
	}
	return writeColumns(w, rows)
}

// WriteAllCiphers writes the all-ciphers scan result.
func WriteAllCiphers(w io.Writer, checks []probe.CipherCheck) error {
	rows := [][]string{{"cipher", "accepted", "protocols", "pfs"}}
	for _, c := range checks {
		accepted, protocols, pfs := "no", "-", "-"
		if c.Accepted {
			accepted = "yes"
			protocols = strings.Join(versionNames(c), ",")
			pfs = c.PFS.String()
		}
		rows = append(rows, []string{c.Cipher, accepted, protocols, pfs})
	}
	return writeColumns(w, rows)
}

// WriteNames writes one name per line.
func WriteNames(w io.Writer, names []string) error {
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

func versionNames(c probe.CipherCheck) []string {
	return probe.Outcome{Protocols: c.Protocols}.ProtocolNames()
}

func micros(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func writeColumns(w io.Writer, rows [][]string) error {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]+columnGap))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
