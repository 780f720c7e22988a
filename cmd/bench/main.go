// bench - AON size comparison
//
// Compares AON against minified JSON for each input document:
//   - Bytes
//   - Approximate token counts (byte-based heuristics)
//
// Inputs are JSON files or directories of them. Output is a markdown table
// on stdout and, with --csv, a CSV file.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Neumenon/aon/aon"
)

type caseResult struct {
	Name       string
	JSONBytes  int
	AONBytes   int
	JSONTokens int
	AONTokens  int
	Schemas    int
}

func (r caseResult) bytesPct() float64 {
	return pct(r.JSONBytes-r.AONBytes, r.JSONBytes)
}

func (r caseResult) tokensPct() float64 {
	return pct(r.JSONTokens-r.AONTokens, r.JSONTokens)
}

func pct(saved, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(saved) / float64(total) * 100
}

func main() {
	var (
		root    string
		csvPath string
		bfs     bool
	)
	pflag.StringVarP(&root, "root", "r", "root", "root schema name")
	pflag.StringVar(&csvPath, "csv", "", "also write results as CSV to this path")
	pflag.BoolVar(&bfs, "bfs", false, "breadth-first schema discovery")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bench [flags] file.json|dir ...")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	files, err := collectFiles(pflag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	var opts []aon.Option
	if bfs {
		opts = append(opts, aon.WithOrder(aon.BreadthFirst))
	}

	var results []caseResult
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: %v\n", path, err)
			continue
		}
		r, err := measure(filepath.Base(path), data, root, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: %v\n", path, err)
			continue
		}
		results = append(results, r)
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = writeCSV(f, results)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "CSV written to: %s\n", csvPath)
	}
	writeMarkdown(os.Stdout, results)
}

// collectFiles expands directories to the *.json files they contain.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// measure encodes one JSON document both ways.
func measure(name string, data []byte, root string, opts ...aon.Option) (caseResult, error) {
	doc, err := aon.FromJSON(data)
	if err != nil {
		return caseResult{}, err
	}
	minified, err := doc.MarshalJSON()
	if err != nil {
		return caseResult{}, err
	}
	text, err := aon.Marshal(doc, root, opts...)
	if err != nil {
		return caseResult{}, err
	}

	return caseResult{
		Name:       name,
		JSONBytes:  len(minified),
		AONBytes:   len(text),
		JSONTokens: estimateTokens(string(minified)),
		AONTokens:  estimateTokens(text),
		Schemas:    aon.BuildSchemas(doc, root, opts...).Len(),
	}, nil
}

// estimateTokens approximates a BPE token count: structural punctuation is
// one token each, words and digit runs cost about one token per four bytes,
// and whitespace merges into its neighbours.
func estimateTokens(s string) int {
	if s == "" {
		return 0
	}

	tokens := 0
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isPunctuation(c):
			tokens++
			i++
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c):
			n := runLen(s[i:], func(b byte) bool {
				return isDigit(b) || b == '.' || b == '-' || b == '+' || b == 'e' || b == 'E'
			})
			tokens += (n + 3) / 4
			i += n
		case isWordByte(c):
			n := runLen(s[i:], isWordByte)
			tokens += (n + 3) / 4
			i += n
		default:
			tokens++
			i++
		}
	}
	return max(1, tokens)
}

func runLen(s string, ok func(byte) bool) int {
	n := 0
	for n < len(s) && ok(s[n]) {
		n++
	}
	return n
}

func isPunctuation(c byte) bool {
	return strings.IndexByte("{}[]():,\"'=!;_<>", c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c)
}

func writeCSV(w io.Writer, results []caseResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "schemas", "json_bytes", "aon_bytes", "bytes_pct", "json_tokens", "aon_tokens", "tokens_pct"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Name,
			strconv.Itoa(r.Schemas),
			strconv.Itoa(r.JSONBytes),
			strconv.Itoa(r.AONBytes),
			strconv.FormatFloat(r.bytesPct(), 'f', 1, 64),
			strconv.Itoa(r.JSONTokens),
			strconv.Itoa(r.AONTokens),
			strconv.FormatFloat(r.tokensPct(), 'f', 1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, results []caseResult) {
	var total caseResult
	for _, r := range results {
		total.JSONBytes += r.JSONBytes
		total.AONBytes += r.AONBytes
		total.JSONTokens += r.JSONTokens
		total.AONTokens += r.AONTokens
	}

	fmt.Fprintf(w, "# AON vs JSON (%d documents)\n\n", len(results))
	fmt.Fprintf(w, "| Metric | JSON (minified) | AON | Savings |\n")
	fmt.Fprintf(w, "|--------|-----------------|-----|---------|\n")
	fmt.Fprintf(w, "| **Bytes** | %d | %d | %d (%.1f%%) |\n",
		total.JSONBytes, total.AONBytes, total.JSONBytes-total.AONBytes, total.bytesPct())
	fmt.Fprintf(w, "| **Tokens** (est.) | ~%d | ~%d | ~%d (%.1f%%) |\n\n",
		total.JSONTokens, total.AONTokens, total.JSONTokens-total.AONTokens, total.tokensPct())

	fmt.Fprintf(w, "| Document | Schemas | JSON Bytes | AON Bytes | Bytes %% | JSON Tok | AON Tok | Tok %% |\n")
	fmt.Fprintf(w, "|----------|---------|------------|-----------|---------|----------|---------|-------|\n")
	for _, r := range results {
		fmt.Fprintf(w, "| %s | %d | %d | %d | %+.1f%% | %d | %d | %+.1f%% |\n",
			truncateName(r.Name, 25), r.Schemas, r.JSONBytes, r.AONBytes, r.bytesPct(),
			r.JSONTokens, r.AONTokens, r.tokensPct())
	}
}

func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
