// Package svnxml decodes the three XML shapes `svn --xml` emits: a verbose
// log entry, a flat `svn ls` listing, and a recursive `svn ls -R` listing.
// Each decoder is a pure function: no I/O, no subprocess knowledge.
package svnxml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ojciec-dev/svnparse/internal/svnerr"
)

// RawPath is one <path> entry from a logentry's <paths> block.
type RawPath struct {
	Path         string
	Action       string // "A", "D", "M", or "R"
	CopyFromPath string // empty if not a copy
	CopyFromRev  int64  // meaningful only if CopyFromPath != ""
}

// LogEntry is the decoded form of a single `svn log --verbose --xml` entry.
type LogEntry struct {
	Revision int64
	Paths    []RawPath
}

type logXML struct {
	XMLName   xml.Name `xml:"log"`
	LogEntry  []struct {
		Revision int64 `xml:"revision,attr"`
		Paths    *struct {
			Path []struct {
				Action       string `xml:"action,attr"`
				CopyFromPath string `xml:"copyfrom-path,attr"`
				CopyFromRev  int64  `xml:"copyfrom-rev,attr"`
				Value        string `xml:",chardata"`
			} `xml:"path"`
		} `xml:"paths"`
	} `xml:"logentry"`
}

// DecodeLog parses `svn log --verbose --xml --limit 1` output into a
// LogEntry. A <logentry> with no <paths> block (some historical
// repositories contain these) decodes to a LogEntry with an empty Paths
// slice; that is not an error here, callers treat it as a benign empty
// parse (see internal/parse).
func DecodeLog(data []byte) (LogEntry, error) {
	var doc logXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return LogEntry{}, fmt.Errorf("decode log xml: %w: %v", svnerr.ErrProtocol, err)
	}
	if len(doc.LogEntry) == 0 {
		return LogEntry{}, fmt.Errorf("decode log xml: %w: no logentry element", svnerr.ErrProtocol)
	}
	entry := doc.LogEntry[0]
	out := LogEntry{Revision: entry.Revision}
	if entry.Paths == nil {
		return out, nil
	}
	out.Paths = make([]RawPath, 0, len(entry.Paths.Path))
	for _, p := range entry.Paths.Path {
		out.Paths = append(out.Paths, RawPath{
			Path:         p.Value,
			Action:       p.Action,
			CopyFromPath: p.CopyFromPath,
			CopyFromRev:  p.CopyFromRev,
		})
	}
	return out, nil
}

// EncodeLog renders a LogEntry back into the XML shape DecodeLog reads. It
// exists for round-trip testing (spec property: decodeLog(encodeLog(e)) == e
// over the subset of fields the decoder reads) and for building fixtures in
// other packages' tests.
func EncodeLog(e LogEntry) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<log>\n")
	fmt.Fprintf(&b, "  <logentry revision=\"%d\">\n", e.Revision)
	if len(e.Paths) > 0 {
		b.WriteString("    <paths>\n")
		for _, p := range e.Paths {
			b.WriteString("      <path")
			fmt.Fprintf(&b, " action=%q", p.Action)
			if p.CopyFromPath != "" {
				fmt.Fprintf(&b, " copyfrom-path=%q copyfrom-rev=%q", p.CopyFromPath, fmt.Sprint(p.CopyFromRev))
			}
			fmt.Fprintf(&b, ">%s</path>\n", xmlEscape(p.Path))
		}
		b.WriteString("    </paths>\n")
	}
	b.WriteString("  </logentry>\n</log>\n")
	return []byte(b.String())
}

func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
