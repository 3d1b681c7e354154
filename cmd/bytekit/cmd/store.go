package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/bytekit/pkg/asset"
)

// storeCmd represents the store command
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep compressed frames in the local frame store",
	Long: `Keep compressed frames in a frame store under the configured data
directory. Frames are addressed by KSUID.`,
}

var storePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Compress a file into the store and print its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := asset.LoadFile(args[0])
		if err != nil {
			return err
		}

		s, err := container.OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.Put(b)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id.String())
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <id> <output>",
	Short: "Decompress a stored frame into a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		s, err := container.OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		b, err := s.Get(id)
		if err != nil {
			return err
		}
		if err := asset.WriteFile(args[1], b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", b.Size(), args[1])
		return nil
	},
}

var storeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a stored frame",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		s, err := container.OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		return s.Delete(id)
	},
}

var storeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored frames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := container.OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ids, err := s.List()
		if err != nil {
			return err
		}
		for _, id := range ids {
			frame, err := s.GetFrame(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", id, id.Time().UTC().Format("2006-01-02T15:04:05Z"), frame.Size())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeRmCmd, storeLsCmd)
}
