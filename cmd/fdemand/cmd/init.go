package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Materialize the catalog on disk",
	Long: "Create the directories of every declared object and write defaults for files that do not exist yet.\n" +
		"With --extend, existing JSON files are merged with their defaults.",
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("extend", false, "merge defaults into existing JSON files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	sess, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer sess.close(&err)

	extend, _ := cmd.Flags().GetBool("extend")
	if err := sess.reg.Init(extend || sess.cfg.Extend); err != nil {
		return fmt.Errorf("init failed: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Initialized %d objects under %s\n", len(sess.reg.Objects()), sess.reg.Root())
	return nil
}
