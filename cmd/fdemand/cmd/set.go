package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filedemand/filedemand"
)

var setCmd = &cobra.Command{
	Use:   "set <key> [path] <value>",
	Short: "Write the content of an object",
	Long: "Write the content of a file object, or of a file under a folder object.\n" +
		"The registry is flushed before the command exits. Values of JSON objects, or any value\n" +
		"given with --json, are parsed as JSON.",
	Args: cobra.RangeArgs(2, 3),
	RunE: runSet,
}

func init() {
	setCmd.Flags().Bool("json", false, "parse the value as JSON and store it JSON-encoded")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) (err error) {
	sess, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer sess.close(&err)

	obj, err := sess.reg.Object(args[0])
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")

	raw := args[len(args)-1]
	var content any = raw
	if asJSON || obj.JSON {
		if err := json.Unmarshal([]byte(raw), &content); err != nil {
			return fmt.Errorf("parse value: %w", err)
		}
	}

	var req filedemand.WriteRequest
	if len(args) == 3 {
		req = filedemand.FolderWrite{Key: args[0], Path: args[1], Content: content, JSON: asJSON}
	} else {
		req = filedemand.FileWrite{Key: args[0], Content: content, JSON: asJSON}
	}

	return sess.reg.Write(req)
}
