package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List declared objects",
	Long:  "List every object of the catalog with its kind, mode and resolved path.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) (err error) {
	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.close(&err)

	out := cmd.OutOrStdout()

	objs := sess.reg.Objects()
	if len(objs) == 0 {
		fmt.Fprintln(out, "(no objects)")
		return nil
	}

	for _, obj := range objs {
		path, err := sess.reg.Resolve(obj.Key)
		if err != nil {
			return err
		}
		cached, err := sess.reg.Cached(obj.Key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%v\t%s\n", obj.Key, obj.Kind, obj.Mode, cached, path)
	}
	return nil
}
