package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/spf13/cobra"
)

var openEditor bool

func init() {
	editCmd.Flags().BoolVarP(&openEditor, "open", "", false, "open the document in $EDITOR")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <anchor-id>",
	Short: "Locate the document defining a card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		location, err := s.ResolveCard(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if location == nil {
			fmt.Fprintf(os.Stderr, "No card with anchor %s. Run `sprout index` first.\n", args[0])
			os.Exit(1)
		}
		if !openEditor {
			fmt.Println(location)
			return
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}
		c := exec.Command(editor, fmt.Sprintf("+%d", location.Line), documentPath(core.HomeDir(), location))
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
