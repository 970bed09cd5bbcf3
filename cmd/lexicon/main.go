// Command lexicon runs the dictionary API and its maintenance tasks.
//
//	lexicon serve                      serve HTTP until SIGINT/SIGTERM
//	lexicon migrate                    apply pending database migrations
//	lexicon import [--dry-run] FILE... bulk-load words from YAML or JSON
//	lexicon editor add ID NAME         register an editor
//	lexicon editor list                list registered editors
//	lexicon version                    print build information
//
// Configuration comes from CONFIG_PATH (or --config) and the environment.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/lexicon-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexicon-backend/internal/app"
	"github.com/heartmarshall/lexicon-backend/internal/config"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// globals holds the persistent flags every subcommand reads.
type globals struct {
	configPath string
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "lexicon",
		Short:         "Lexicographic dictionary service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file path (YAML); overrides CONFIG_PATH")

	cmd.AddCommand(
		serveCmd(g),
		migrateCmd(g),
		importCmd(g),
		editorCmd(g),
		versionCmd(),
	)
	return cmd
}

func serveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), g.configPath)
		},
	}
}

func migrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			return postgres.Migrate(cmd.Context(), cfg.Database.DSN, app.NewLogger(cfg.Log))
		},
	}
}

func importCmd(g *globals) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Bulk-load words from YAML or JSON files",
		Long: `Each file holds a list of words, or a mapping with a "words" list, in the
same shape the API accepts. Imported words always start in the "imported"
status. Lemmas that already exist are skipped and listed at the end.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Import(cmd.Context(), files, dryRun)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "files: %d  created: %d  duplicates: %d  invalid: %d\n",
				res.FilesProcessed, res.Created, res.Duplicates, res.Invalid)
			if len(res.DuplicateLemmas) > 0 {
				fmt.Fprintf(out, "skipped: %s\n", strings.Join(res.DuplicateLemmas, ", "))
			}
			if dryRun {
				fmt.Fprintln(out, "dry run: nothing was written")
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate files without writing")
	return cmd
}

func editorCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor",
		Short: "Manage the editors words can be assigned to",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add ID NAME",
		Short: "Register an editor, or rename an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("editor id: %w", err)
			}

			a, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			return a.AddEditor(cmd.Context(), &domain.Editor{ID: id, Name: strings.TrimSpace(args[1])})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered editors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			editors, err := a.ListEditors(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSINCE")
			for _, e := range editors {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Name, e.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lexicon %s\n", app.BuildVersion())
		},
	}
}

func (g *globals) open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
