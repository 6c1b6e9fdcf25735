package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <key> [path...]",
	Short: "Print the absolute path of an object",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) (err error) {
	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.close(&err)

	path, err := sess.reg.Resolve(args[0], args[1:]...)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
