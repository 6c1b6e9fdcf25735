package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <key> [path]",
	Short: "Print the content of an object",
	Long: "Print the content of a file object, or of a file under a folder object.\n" +
		"JSON content is printed indented. With --stream the file is copied straight from disk.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func init() {
	getCmd.Flags().Bool("stream", false, "read from disk, bypassing the cache")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) (err error) {
	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.close(&err)

	out := cmd.OutOrStdout()

	if stream, _ := cmd.Flags().GetBool("stream"); stream {
		rc, err := sess.reg.Stream(args[0], args[1:]...)
		if err != nil {
			return err
		}
		defer rc.Close()

		_, err = io.Copy(out, rc)
		return err
	}

	content, err := sess.reg.Get(args[0], args[1:]...)
	if err != nil {
		return err
	}
	return printContent(out, content)
}

func printContent(w io.Writer, content any) error {
	switch v := content.(type) {
	case string:
		_, err := io.WriteString(w, v)
		return err
	case []byte:
		_, err := w.Write(v)
		return err
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
