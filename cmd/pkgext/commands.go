package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/provide-io/flavor/go/pkgext/pkg/extensions"
	"github.com/provide-io/flavor/go/pkgext/pkg/scan"
)

type listEntry struct {
	Extension extensions.Extension `json:"extension"`
	Kind      extensions.Kind      `json:"kind"`
}

func parseKinds(names []string) ([]extensions.Kind, error) {
	kinds := make([]extensions.Kind, 0, len(names))
	for _, name := range names {
		k, err := extensions.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newListCmd(a *app) *cobra.Command {
	var (
		asJSON    bool
		kindNames []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recognized extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(kindNames)
			if err != nil {
				return err
			}

			entries := []listEntry{}
			for _, ext := range extensions.Values() {
				if len(kinds) > 0 && !slices.Contains(kinds, ext.Kind()) {
					continue
				}
				entries = append(entries, listEntry{Extension: ext, Kind: ext.Kind()})
			}

			if asJSON {
				return a.writeJSON(entries)
			}
			for _, e := range entries {
				fmt.Fprintln(a.stdout, e.Extension)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().StringSliceVar(&kindNames, "kind", nil, "Only list these kinds (installer, app-package, bundle, archive, font)")
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <extension>...",
		Short: "Strictly parse extension tokens",
		Long:  "Strictly parse extension tokens. Matching is exact and case-sensitive.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, token := range args {
				ext, err := extensions.Parse(token)
				if err != nil {
					a.logger.Debug("rejected", "token", token)
					fmt.Fprintln(a.stderr, err)
					failed = true
					continue
				}
				fmt.Fprintln(a.stdout, ext)
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Classify file names by extension",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			failed := false
			for _, name := range args {
				ext, err := extensions.FromFileName(name)
				if err != nil {
					fmt.Fprintf(a.stderr, "%s: %v\n", name, err)
					failed = true
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, ext, ext.Kind())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
}

func newScanCmd(a *app) *cobra.Command {
	var (
		asJSON    bool
		recurse   bool
		kindNames []string
	)

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Find files with recognized extensions in a directory or archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(kindNames)
			if err != nil {
				return err
			}

			s := scan.New(scan.Options{
				Logger:     a.logger.Named("scan"),
				Kinds:      kinds,
				Recurse:    recurse,
				MaxEntries: a.cfg.MaxEntries,
			})
			matches, err := s.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.logger.Info("scan complete", "root", args[0], "matches", len(matches))

			if asJSON {
				if matches == nil {
					matches = []scan.Match{}
				}
				return a.writeJSON(matches)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, m := range matches {
				location := m.Path
				if m.Archive != "" {
					location = m.Archive + "!" + m.Path
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", location, m.Extension, m.Kind, m.Size)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "Look inside archives found while scanning")
	cmd.Flags().StringSliceVar(&kindNames, "kind", nil, "Only report these kinds (installer, app-package, bundle, archive, font)")
	return cmd
}
