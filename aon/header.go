package aon

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Header Scanning
// ============================================================
//
// The scanner is line oriented with four states:
//
//	Seeking   --schemas:{-->  InSchemas  --}-->  Seeking
//	Seeking   --data:------>  InData
//	any state --end-------->  Done
//
// Data rows are buffered verbatim; they are decoded only after the whole
// header has been read, so the root schema is always known by then.

type scanState uint8

const (
	stateSeeking scanState = iota
	stateInSchemas
	stateInData
	stateDone
)

// Document is a scanned AON text: its schema table and raw data rows.
type Document struct {
	Table *Table
	Count int      // Value of the count: line, or -1 if absent
	Rows  []string // Trimmed, non-empty data lines
}

// ParseHeader scans AON text into a Document. It fails only when no schema
// is declared; malformed schema lines are skipped.
func ParseHeader(input string) (*Document, error) {
	doc := &Document{Count: -1}
	var table *Table
	state := stateSeeking

	sc := bufio.NewScanner(strings.NewReader(input))
	sc.Buffer(make([]byte, 0, 64*1024), len(input)+1)
	for state != stateDone && sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if line == endMarker {
			state = stateDone
			continue
		}

		switch state {
		case stateSeeking:
			switch {
			case line == schemasOpen:
				state = stateInSchemas
			case line == dataMarker:
				state = stateInData
			case strings.HasPrefix(line, countPrefix):
				if n, err := strconv.Atoi(strings.TrimSpace(line[len(countPrefix):])); err == nil && n >= 0 {
					doc.Count = n
				}
			}

		case stateInSchemas:
			if line == schemasClose {
				state = stateSeeking
				continue
			}
			s, ok := parseSchemaLine(line)
			if !ok {
				continue
			}
			if table == nil {
				table = NewTable(s.Name)
			}
			table.Put(s)

		case stateInData:
			if line != "" {
				doc.Rows = append(doc.Rows, line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	if table == nil {
		return nil, ErrNoSchemas
	}
	doc.Table = table
	return doc, nil
}

// parseSchemaLine parses name:(field:type,...).
func parseSchemaLine(line string) (*Schema, bool) {
	pos := strings.Index(line, ":(")
	if pos < 0 || !strings.HasSuffix(line, ")") {
		return nil, false
	}
	name := strings.TrimSpace(line[:pos])
	if name == "" {
		return nil, false
	}
	body := line[pos+2 : len(line)-1]

	s := &Schema{Name: name}
	for _, def := range splitCommas(body) {
		colon := strings.IndexByte(def, ':')
		if colon < 0 {
			continue
		}
		s.Fields = append(s.Fields, Field{
			Name: strings.TrimSpace(def[:colon]),
			Type: ParseFieldType(def[colon+1:]),
		})
	}
	return s, true
}
