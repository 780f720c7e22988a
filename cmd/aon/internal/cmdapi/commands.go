package cmdapi

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Neumenon/aon/aon"
	"github.com/Neumenon/aon/docfmt"
)

func addSourceFlags(set *pflag.FlagSet, s *state) {
	set.StringVarP(&s.root, flagRoot, "r", "", "root schema name")
	set.StringVar(&s.from, flagFrom, "", "source format: json, yaml, toml, msgpack (default from extension, else json)")
	set.StringVar(&s.order, flagOrder, "lifo", "schema discovery order: lifo or bfs")
	set.BoolVar(&s.qualify, flagQualify, false, "name colliding nested schemas parent.field instead of overwriting")
}

func encodeCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a document as AON.",
		Long: `Encode reads a JSON, YAML, TOML or MessagePack document holding an object
or a list of objects, infers its schemas and writes AON text.
If no file is given, reads from stdin.`,
		Example: `  aon encode users.json --root users
  cat users.yaml | aon encode --from yaml -r users -o users.aon`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireRoot(); err != nil {
				return err
			}
			doc, err := s.loadSource(cmd, args)
			if err != nil {
				return err
			}
			opts, err := s.inferOptions()
			if err != nil {
				return err
			}
			text, err := aon.Marshal(doc, s.root, opts...)
			if err != nil {
				return err
			}
			return s.writeOutput(cmd, []byte(text))
		},
	}
	addSourceFlags(cmd.Flags(), s)
	return cmd
}

func decodeCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode AON text.",
		Long: `Decode reads AON text and writes the document it describes.
A single data row decodes to an object, any other row count to a list.
If no file is given, reads from stdin.`,
		Example: `  aon decode users.aon --indent
  aon decode users.aon --to yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := docfmt.ParseFormat(s.to)
			if err != nil {
				return err
			}
			data, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := aon.ParseHeader(string(data))
			if err != nil {
				return err
			}
			s.logger.Debug("header scanned", "source", name, "schemas", doc.Table.Len(),
				"rows", len(doc.Rows), "root", doc.Table.Root)
			if doc.Count >= 0 && doc.Count != len(doc.Rows) && len(doc.Rows) > 0 {
				s.logger.Warn("row count differs from header", "count", doc.Count, "rows", len(doc.Rows))
			}

			v, err := aon.Decode(doc)
			if err != nil {
				return err
			}
			out, err := docfmt.Dump(v, f, docfmt.DumpOptions{Indent: s.indent})
			if err != nil {
				return err
			}
			if f == docfmt.JSON {
				out = append(out, '\n')
			}
			return s.writeOutput(cmd, out)
		},
	}
	cmd.Flags().StringVar(&s.to, flagTo, "json", "output format: json, yaml, msgpack")
	cmd.Flags().BoolVar(&s.indent, flagIndent, false, "indent JSON output")
	return cmd
}

func schemaCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [file]",
		Short: "Print the schemas inferred from a document.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireRoot(); err != nil {
				return err
			}
			doc, err := s.loadSource(cmd, args)
			if err != nil {
				return err
			}
			opts, err := s.inferOptions()
			if err != nil {
				return err
			}
			table := aon.BuildSchemas(doc, s.root, opts...)
			if !table.Has(s.root) {
				return fmt.Errorf("%w: %q (the document holds no objects)", aon.ErrRootSchema, s.root)
			}

			var b strings.Builder
			b.WriteString(table.Canonical())
			fmt.Fprintf(&b, "fingerprint: %s\n", table.Fingerprint())
			return s.writeOutput(cmd, []byte(b.String()))
		},
	}
	addSourceFlags(cmd.Flags(), s)
	return cmd
}

func roundtripCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip [file]",
		Short: "Encode a document, decode the result and compare.",
		Long: `Roundtrip encodes a document as AON, decodes the text again and reports
whether the result equals the source. It exits non-zero on mismatch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireRoot(); err != nil {
				return err
			}
			doc, err := s.loadSource(cmd, args)
			if err != nil {
				return err
			}
			opts, err := s.inferOptions()
			if err != nil {
				return err
			}
			text, err := aon.Marshal(doc, s.root, opts...)
			if err != nil {
				return err
			}
			back, err := aon.Unmarshal(text)
			if err != nil {
				return fmt.Errorf("decode encoded text: %w", err)
			}

			src, err := doc.MarshalJSON()
			if err != nil {
				return err
			}
			report := fmt.Sprintf("json %d bytes, aon %d bytes", len(src), len(text))
			if !aon.Equal(doc, back) {
				s.logger.Debug("round trip differs", "decoded", back.String())
				return fmt.Errorf("%w: %s", errRoundTrip, report)
			}
			return s.writeOutput(cmd, []byte("ok: "+report+"\n"))
		},
	}
	addSourceFlags(cmd.Flags(), s)
	return cmd
}
