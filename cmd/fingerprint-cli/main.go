// Command fingerprint-cli is the key-generation collaborator named in
// §6: given a threshold and agent count, it samples a uniform master
// scalar, splits it via Shamir sharing, and prints the master secret and
// every per-agent share in Compact (base58) form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/fingerprinting/pkg/compact"
	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/shamir"
)

var (
	flagAgents    int
	flagThreshold int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fingerprint-cli",
		Short: "Key-generation tool for the transaction fingerprinting service",
	}
	root.AddCommand(newKeygenCmd())
	return root
}

func newKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Sample a master secret and split it into per-agent Shamir shares",
		RunE:  runKeygen,
	}
	cmd.Flags().IntVar(&flagAgents, "agents", 0, "total number of agents (n)")
	cmd.Flags().IntVar(&flagThreshold, "threshold", 0, "reconstruction threshold (t)")
	_ = cmd.MarkFlagRequired("agents")
	_ = cmd.MarkFlagRequired("threshold")
	return cmd
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	master, err := field.Random()
	if err != nil {
		return fmt.Errorf("fingerprint-cli: failed to sample master secret: %w", err)
	}

	sharing, err := shamir.Generate(master, flagThreshold, flagAgents)
	if err != nil {
		return fmt.Errorf("fingerprint-cli: failed to generate shares: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "master: %s\n", compact.Scalar(master))
	for i := 1; i <= flagAgents; i++ {
		share, _ := sharing.Share(i)
		fmt.Fprintf(out, "agent %d: %s\n", i, compact.Scalar(share))
	}
	return nil
}
