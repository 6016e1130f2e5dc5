// Command remotehdt serializes RDF graphs into a chunked tensor
// artifact and answers point queries against it, generalizing the
// teacher's flat `sopp` flags into a cobra command tree. Of those
// flags only -i survives (as serialize's --input shorthand); --db
// replaces -d and there is no -base. Flag values come from the
// command line only; viper is given an env prefix but no flag is
// bound to it.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	remotehdt "github.com/weso/remotehdt"
	"github.com/weso/remotehdt/layout"
	"github.com/weso/remotehdt/refsystem"
	"github.com/weso/remotehdt/store"
)

var log = logrus.StandardLogger()

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:   "remotehdt",
		Short: "A chunked-tensor storage engine for RDF knowledge graphs",
	}

	root.PersistentFlags().String("config", "", "path to a config file (accepted; no subcommand reads it)")
	viper.SetEnvPrefix("remotehdt")
	viper.AutomaticEnv()

	root.AddCommand(serializeCmd(), loadAndQueryCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serializeCmd() *cobra.Command {
	var rdfPath, dbPath, rs string
	var shard int

	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Parse an RDF file and persist it as a chunked array",
		RunE: func(cmd *cobra.Command, args []string) error {
			reference, err := refsystem.Parse(rs)
			if err != nil {
				return err
			}
			strategy := layout.BestStrategy
			if shard > 0 {
				strategy = layout.ShardingStrategy(shard)
			}

			backend, err := store.OpenFileSystemBackend(dbPath, true)
			if err != nil {
				return err
			}
			defer backend.Close()

			s, err := remotehdt.Serialize(backend, rdfPath, reference, layout.Matrix, strategy)
			if err != nil {
				return err
			}
			log.WithField("stats", s.Stats()).Info("serialize finished")
			return nil
		},
	}

	cmd.Flags().StringVarP(&rdfPath, "input", "i", "", "RDF file to import (.nt, .ttl, .rdf)")
	cmd.Flags().StringVar(&dbPath, "db", "", "output artifact path")
	cmd.Flags().StringVar(&rs, "reference-system", "spo", "one of spo, sop, pso, pos, osp, ops")
	cmd.Flags().IntVar(&shard, "shard", 0, "rows per shard (0 picks the Best heuristic)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("db")

	return cmd
}

func loadAndQueryCmd() *cobra.Command {
	var dbPath, endpoint, mode string
	var subject, predicate, object string

	cmd := &cobra.Command{
		Use:   "load-and-query",
		Short: "Open an artifact and resolve a single-term query against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadMode := remotehdt.Zarr
			if mode == "sparse" {
				loadMode = remotehdt.Sparse
			}

			backend, err := openBackend(dbPath, endpoint)
			if err != nil {
				return err
			}
			defer backend.Close()

			s, err := remotehdt.Load(backend, loadMode)
			if err != nil {
				return err
			}

			var result remotehdt.OpsFormat
			switch {
			case subject != "":
				result, err = s.GetSubject(subject)
			case predicate != "":
				result, err = s.GetPredicate(predicate)
			case object != "":
				result, err = s.GetObject(object)
			default:
				return fmt.Errorf("remotehdt: exactly one of --subject, --predicate, --object is required")
			}
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "artifact path (filesystem backend)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "artifact URL (HTTP backend, mutually exclusive with --db)")
	cmd.Flags().StringVar(&mode, "mode", "zarr", "zarr or sparse")
	cmd.Flags().StringVar(&subject, "subject", "", "query by subject lexical form")
	cmd.Flags().StringVar(&predicate, "predicate", "", "query by predicate lexical form")
	cmd.Flags().StringVar(&object, "object", "", "query by object lexical form")

	return cmd
}

func statsCmd() *cobra.Command {
	var dbPath, endpoint string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print shape and dictionary sizes of a serialized artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(dbPath, endpoint)
			if err != nil {
				return err
			}
			defer backend.Close()

			s, err := remotehdt.Load(backend, remotehdt.Zarr)
			if err != nil {
				return err
			}
			fmt.Printf("%+v\n", s.Stats())
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "artifact path (filesystem backend)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "artifact URL (HTTP backend, mutually exclusive with --db)")

	return cmd
}

func openBackend(dbPath, endpoint string) (store.Backend, error) {
	if endpoint != "" {
		return store.OpenHTTPBackend(endpoint), nil
	}
	return store.OpenFileSystemBackend(dbPath, false)
}

func printResult(r remotehdt.OpsFormat) {
	if r.Kind == remotehdt.DenseResult {
		fmt.Println(r.Dense)
		return
	}
	for _, e := range r.Sparse {
		fmt.Printf("%d: %d\n", e.Index, e.Value)
	}
}
