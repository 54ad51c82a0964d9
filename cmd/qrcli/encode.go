package main

import (
	"fmt"
	"os"

	"github.com/rawen554/qrcodegen/internal/qr"
	"github.com/spf13/cobra"
)

const outputPerm = 0o644

func newEncodeCmd() *cobra.Command {
	var (
		rf     recordFlags
		format string
		level  string
		output string
		width  int
		margin int
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a record into a QR image file",
		Example: `  qrcli encode -t wifi -f ssid=Home -f password=secret --format svg -o wifi.svg
  qrcli encode -t vcard -d contact.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			qrContent, err := rf.format()
			if err != nil {
				return err
			}

			opts := qr.Options{Width: width, Margin: margin}
			if opts.Format, err = qr.ParseFormat(format); err != nil {
				return err
			}
			if opts.Level, err = qr.ParseLevel(level); err != nil {
				return err
			}

			img, err := qr.NewEncoder().Encode(cmd.Context(), qrContent, opts)
			if err != nil {
				return fmt.Errorf("error encoding qr code: %w", err)
			}

			if output == "-" {
				_, err = cmd.OutOrStdout().Write(img)
				return err
			}
			if output == "" {
				output = "qrcode." + opts.Format.Extension()
			}
			if err := os.WriteFile(output, img, outputPerm); err != nil {
				return fmt.Errorf("error writing image: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(img))
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(qr.PNG), "image format: png, jpeg or svg")
	cmd.Flags().StringVar(&level, "level", string(qr.DefaultLevel), "error correction level: L, M, Q or H")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default qrcode.<ext>)`)
	cmd.Flags().IntVar(&width, "width", qr.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&margin, "margin", qr.DefaultMargin, "quiet zone in modules")
	return cmd
}
