package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/aeon"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aeon",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aeon version %s\n", strings.TrimSpace(aeon.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
