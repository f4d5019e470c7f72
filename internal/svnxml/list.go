package svnxml

import (
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/ojciec-dev/svnparse/internal/svnerr"
)

// EntryKind is the decoded form of an <entry kind="..."> attribute.
type EntryKind int

const (
	// EntryFile is a plain file entry.
	EntryFile EntryKind = iota
	// EntryDir is a directory entry.
	EntryDir
)

func decodeKind(s string) (EntryKind, error) {
	switch s {
	case "file":
		return EntryFile, nil
	case "dir":
		return EntryDir, nil
	default:
		return 0, fmt.Errorf("decode entry kind %q: %w", s, svnerr.ErrProtocol)
	}
}

// ListEntry is one <entry> from a <list>: a name (or, in the recursive
// shape, a slash-separated relative path) and its kind.
type ListEntry struct {
	Name string
	Kind EntryKind
}

// ListGroup is one <list> element: the URI that was queried (outer `path`
// attribute) and its entries, in document order.
type ListGroup struct {
	URI     string
	Entries []ListEntry
}

type listsXML struct {
	XMLName xml.Name `xml:"lists"`
	List    []struct {
		Path  string `xml:"path,attr"`
		Entry []struct {
			Kind string `xml:"kind,attr"`
			Name string `xml:"name"`
		} `xml:"entry"`
	} `xml:"list"`
}

// DecodeFlatList parses `svn ls --xml` output covering one or more queried
// URIs into an order-preserving slice of ListGroup, one per <list> element
// in document order. The outer `path` attribute is %-decoded because SVN
// re-encodes it when echoing it back.
func DecodeFlatList(data []byte) ([]ListGroup, error) {
	groups, err := decodeLists(data)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		decoded, err := url.PathUnescape(groups[i].URI)
		if err != nil {
			return nil, fmt.Errorf("decode list uri %q: %w: %v", groups[i].URI, svnerr.ErrProtocol, err)
		}
		groups[i].URI = decoded
	}
	return groups, nil
}

// DecodeRecursiveList parses `svn ls -R --xml` output for a single directory
// into its entries, in document order. Names in this shape are
// slash-separated paths relative to the queried directory.
func DecodeRecursiveList(data []byte) ([]ListEntry, error) {
	groups, err := decodeLists(data)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return groups[0].Entries, nil
}

func decodeLists(data []byte) ([]ListGroup, error) {
	var doc listsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode list xml: %w: %v", svnerr.ErrProtocol, err)
	}
	groups := make([]ListGroup, 0, len(doc.List))
	for _, l := range doc.List {
		g := ListGroup{URI: l.Path, Entries: make([]ListEntry, 0, len(l.Entry))}
		for _, e := range l.Entry {
			kind, err := decodeKind(e.Kind)
			if err != nil {
				return nil, err
			}
			g.Entries = append(g.Entries, ListEntry{Name: e.Name, Kind: kind})
		}
		groups = append(groups, g)
	}
	return groups, nil
}
