package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakhrymubarak/pdbe-client/internal/fixture"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
	"github.com/fakhrymubarak/pdbe-client/internal/service"
	"github.com/fakhrymubarak/pdbe-client/internal/table"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <pdb-id>...",
	Short: "Describe entries in one sentence each",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	summaries := map[string]string{}
	var err error

	if offline {
		var errs []error
		for _, id := range args {
			e, ferr := fixture.Entry(id)
			if ferr != nil {
				errs = append(errs, fmt.Errorf("%w (offline entries: %s)", ferr, strings.Join(fixture.IDs(), ", ")))
				continue
			}
			summaries[strings.ToLower(id)] = service.MakeSummary(e)
		}
		err = errors.Join(errs...)
	} else {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		summaries, err = newService(ctx, nil).Summaries(ctx, args)
	}

	if jsonOutput {
		if perr := printJSON(out, summaries); perr != nil {
			return perr
		}
		return err
	}
	for _, id := range sortedKeys(summaries) {
		fmt.Fprintf(out, "%s: %s\n", id, summaries[id])
	}
	return err
}

var citationsCmd = &cobra.Command{
	Use:   "citations <pdb-id>...",
	Short: "Count the reviews and articles citing entries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		counts, err := newService(ctx, nil).CitationCounts(ctx, args)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), counts)
		}
		t := table.New("Citations", "pdb_id", "reviews", "articles")
		for _, id := range sortedKeys(counts) {
			c := counts[id]
			t.AddRow(id, strconv.Itoa(c.Reviews), strconv.Itoa(c.Articles))
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var outliersCmd = &cobra.Command{
	Use:   "outliers <pdb-id>",
	Short: "Count Ramachandran and side-chain outliers per model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		tally, err := newService(ctx, nil).OutlierCounts(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), tally)
		}
		models := map[int]struct{}{}
		for m := range tally.Ramachandran {
			models[m] = struct{}{}
		}
		for m := range tally.Sidechain {
			models[m] = struct{}{}
		}
		ids := make([]int, 0, len(models))
		for m := range models {
			ids = append(ids, m)
		}
		sort.Ints(ids)

		t := table.New("Outliers of "+args[0], "model", "ramachandran", "side-chain")
		for _, m := range ids {
			t.AddRow(strconv.Itoa(m), strconv.Itoa(tally.Ramachandran[m]), strconv.Itoa(tally.Sidechain[m]))
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No outliers.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var outlierModel int

var outlierResiduesCmd = &cobra.Command{
	Use:   "outlier-residues <pdb-id>",
	Short: "List the outlier residues of one model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		residues, err := newService(ctx, nil).OutlierResidues(ctx, args[0], outlierModel)
		if err != nil {
			return err
		}
		rows, err := toRows(residues)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), fmt.Sprintf("Outliers of %s model %d", args[0], outlierModel), rows,
			[]string{"label", "chain_id", "residue_number", "author_residue_number", "alt_code"})
	},
}

var mappingsCmd = &cobra.Command{
	Use:   "mappings <pdb-id>",
	Short: "Show how chains map onto UniProt sequences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		ranges, err := newService(ctx, nil).MappingRanges(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), ranges)
		}
		for _, r := range ranges {
			fmt.Fprintln(cmd.OutOrStdout(), service.DescribeRange(r))
		}
		return nil
	},
}

var mapResidueCmd = &cobra.Command{
	Use:   "map-residue <pdb-id> <chain> <residue-number>",
	Short: "Map a PDB residue number to its UniProt position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		residue, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("residue number %q: %w", args[2], err)
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		pos, err := newService(ctx, nil).MapResidue(ctx, args[0], args[1], residue)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"chain_id": args[1], "residue_number": residue, "uniprot_position": pos})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Residue %d of chain %s is UniProt position %d\n", residue, args[1], pos)
		return nil
	},
}

var secondaryStructureCmd = &cobra.Command{
	Use:   "secondary-structure <pdb-id>...",
	Short: "List helix and strand ranges per chain",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		chains, err := newService(ctx, nil).SecondaryStructureRanges(ctx, args...)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), chains)
		}
		for _, c := range chains {
			fmt.Fprintln(cmd.OutOrStdout(), service.SecondaryStructureReport(c))
		}
		return nil
	},
}

var (
	searchTerms  []string
	searchQuery  string
	searchFields []string
	searchRows   int

	sequenceFields []string
	sequenceRows   int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search PDB entries",
	Long: `Search the PDBe Solr index. Terms given with --term field=value are
combined with AND; values containing spaces are quoted. --query passes a raw
Solr query instead.`,
	Example: `  pdbe search --term molecule_name="Dihydrofolate reductase" --term organism_scientific_name="Homo sapiens" --fl pdb_id,resolution`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var terms []pdbe.SearchTerm
		for _, raw := range searchTerms {
			field, value, ok := strings.Cut(raw, "=")
			if !ok || field == "" {
				return fmt.Errorf("term %q is not field=value", raw)
			}
			terms = append(terms, pdbe.SearchTerm{Field: field, Value: value})
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		docs, err := newService(ctx, nil).Search(ctx, pdbe.SearchRequest{
			Terms:  terms,
			Query:  searchQuery,
			Fields: searchFields,
			Rows:   searchRows,
		})
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), fmt.Sprintf("%d documents", len(docs)), docs, searchFields)
	},
}

var sequenceSearchCmd = &cobra.Command{
	Use:   "sequence-search <sequence>",
	Short: "Find chains similar to a protein sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		hits, err := newService(ctx, nil).SequenceSearch(ctx, args[0], sequenceFields, sequenceRows)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), hits)
		}
		t := table.New(fmt.Sprintf("%d hits", len(hits)), "pdb_id", "chain_id", "e_value", "percentage_identity")
		for _, h := range hits {
			t.AddRow(h.PDBID, h.ChainID, strconv.FormatFloat(h.EValue, 'g', 3, 64), strconv.FormatFloat(h.PercentIdentity, 'f', 1, 64))
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var ligandSitesCmd = &cobra.Command{
	Use:   "ligand-sites <uniprot-accession>",
	Short: "List residues binding ligands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		residues, err := newService(ctx, nil).LigandSiteResidues(ctx, args[0])
		if err != nil {
			return err
		}
		rows, err := toRows(residues)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), "Ligand sites of "+args[0], rows,
			[]string{"ligand_accession", "ligand_name", "start_index", "start_code", "interacting_count", "all_count", "interaction_ratio"})
	},
}

var interfaceResiduesCmd = &cobra.Command{
	Use:   "interface-residues <uniprot-accession>",
	Short: "List residues at macromolecular interfaces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		residues, err := newService(ctx, nil).InterfaceResidues(ctx, args[0])
		if err != nil {
			return err
		}
		rows, err := toRows(residues)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), "Interface residues of "+args[0], rows,
			[]string{"interaction_accession", "interaction_name", "start_index", "start_code", "interacting_pdb_entries", "all_pdb_entries", "interaction_ratio"})
	},
}

func init() {
	outlierResiduesCmd.Flags().IntVar(&outlierModel, "model", 1, "Model id")

	searchCmd.Flags().StringArrayVar(&searchTerms, "term", nil, "Search term as field=value (repeatable)")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Raw Solr query")
	searchCmd.Flags().StringSliceVar(&searchFields, "fl", nil, "Fields to return")
	searchCmd.Flags().IntVar(&searchRows, "rows", pdbe.DefaultRows, "Maximum number of documents")

	sequenceSearchCmd.Flags().StringSliceVar(&sequenceFields, "fl", nil, "Document fields to return")
	sequenceSearchCmd.Flags().IntVar(&sequenceRows, "rows", 1000, "Maximum number of documents")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
