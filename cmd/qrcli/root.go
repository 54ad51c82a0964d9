package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rawen554/qrcodegen/internal/content"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qrcli",
		Short: "Build QR code images from form fields without running the server",
		Long: `qrcli formats a QR record (url, wifi, vcard, ...) into its content string
and encodes it as a PNG, JPEG or SVG image.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newEncodeCmd(),
		newContentCmd(),
		newTypesCmd(),
	)
	return cmd
}

func newContentCmd() *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Print the content string a record encodes to",
		RunE: func(cmd *cobra.Command, args []string) error {
			qrContent, err := rf.format()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), qrContent)
			return err
		},
	}
	rf.register(cmd)
	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported record types and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tREQUIRED\tOPTIONAL")
			for _, info := range content.SupportedTypes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Type, strings.Join(info.Required, ","), strings.Join(info.Optional, ","))
			}
			return tw.Flush()
		},
	}
}
