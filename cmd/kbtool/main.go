// Command kbtool runs Knuth-Bendix completion on presentations described in
// YAML files:
//
//	alphabet: ab
//	empty_word: false
//	relations:
//	  - [aa, a]
//	  - [ab, a]
//	  - [ba, a]
//
// Subcommands: complete (print the completed rule set), nf (normal forms of
// words), equal (decide the word problem for a pair), size (count the
// presented structure).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gorewrite/pkg/knuthbendix"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type options struct {
	maxRules   uint64
	maxOverlap uint64
	interval   uint64
	policy     string
	timeout    time.Duration
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "kbtool",
		Short:         "Knuth-Bendix completion for finite presentations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.Uint64Var(&opts.maxRules, "max-rules", 0, "cap on active rules (0 = unbounded)")
	pf.Uint64Var(&opts.maxOverlap, "max-overlap", 0, "cap on the overlap measure (0 = unbounded)")
	pf.Uint64Var(&opts.interval, "interval", 4096, "overlap resolutions between confluence checks")
	pf.StringVar(&opts.policy, "policy", "abc", "overlap measure: abc, ab_bc or max_ab_bc")
	pf.DurationVar(&opts.timeout, "timeout", 0, "overall deadline (0 = none)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log completion progress to stderr")

	root.AddCommand(newCompleteCmd(opts))
	root.AddCommand(newNFCmd(opts))
	root.AddCommand(newEqualCmd(opts))
	root.AddCommand(newSizeCmd(opts))
	return root
}

func newCompleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "complete FILE",
		Short: "Run completion and print the active rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := loadEngine(args[0], opts)
			if err != nil {
				return err
			}
			ctx, cancel := opts.context()
			defer cancel()
			runErr := kb.Run(ctx)
			if runErr != nil && !errors.Is(runErr, knuthbendix.ErrRuleCapReached) {
				return runErr
			}
			fmt.Fprint(cmd.OutOrStdout(), renderCompletion(kb))
			if runErr != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "stopped: %v\n", runErr)
			}
			return nil
		},
	}
}

func newNFCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "nf FILE WORD...",
		Short: "Print the normal form of each word",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := loadEngine(args[0], opts)
			if err != nil {
				return err
			}
			ctx, cancel := opts.context()
			defer cancel()
			for _, w := range args[1:] {
				nf, err := kb.NormalForm(ctx, w)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", w, nf)
			}
			return nil
		},
	}
}

func newEqualCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "equal FILE U V",
		Short: "Decide whether two words are equal under the relations",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := loadEngine(args[0], opts)
			if err != nil {
				return err
			}
			ctx, cancel := opts.context()
			defer cancel()
			eq, err := kb.EqualTo(ctx, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), eq)
			return nil
		},
	}
}

func newSizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "size FILE",
		Short: "Count the elements of the presented structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := loadEngine(args[0], opts)
			if err != nil {
				return err
			}
			ctx, cancel := opts.context()
			defer cancel()
			n, err := kb.Size(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSize(n))
			return nil
		},
	}
}

func (o *options) context() (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(context.Background(), o.timeout)
	}
	return context.Background(), func() {}
}

func (o *options) apply(kb *knuthbendix.KnuthBendix) error {
	if o.maxRules > 0 {
		kb.MaxRules(o.maxRules)
	}
	if o.maxOverlap > 0 {
		kb.MaxOverlap(o.maxOverlap)
	}
	kb.CheckConfluenceInterval(o.interval)
	policy, err := knuthbendix.ParseOverlapPolicy(o.policy)
	if err != nil {
		return err
	}
	kb.OverlapPolicy(policy)
	if o.verbose {
		kb.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return nil
}

func loadEngine(path string, opts *options) (*knuthbendix.KnuthBendix, error) {
	kb, err := loadPresentationFile(path)
	if err != nil {
		return nil, err
	}
	if err := opts.apply(kb); err != nil {
		return nil, err
	}
	return kb, nil
}

func renderCompletion(kb *knuthbendix.KnuthBendix) string {
	out := ""
	for lhs, rhs := range kb.ActiveRules() {
		out += fmt.Sprintf("%s -> %s\n", lhs, rhs)
	}
	out += fmt.Sprintf("confluent: %t\n", kb.Confluent())
	return out
}

func renderSize(n uint64) string {
	if n == knuthbendix.Infinite {
		return "infinite\n"
	}
	return fmt.Sprintf("%d\n", n)
}
