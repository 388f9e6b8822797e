package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axiomfs/axiomfs"
)

const defaultImageSize = 1024 * 1024

// withImage opens the image at path, passes it to fn and closes it again.
func (a *app) withImage(path string, fn func(img *axiomfs.Image) error) (err error) {
	img, err := axiomfs.OpenImageFs(a.fs, path)
	if err != nil {
		return fmt.Errorf("the file system image could not be opened: %w", err)
	}
	defer func() {
		if closeErr := img.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("the file system image could not be closed: %w", closeErr)
		}
	}()

	return fn(img)
}

func (a *app) format(path string) error {
	return a.withImage(path, func(img *axiomfs.Image) error {
		if err := axiomfs.Format(img, a.config.VolumeName); err != nil {
			return fmt.Errorf("the image could not be formatted: %w", err)
		}
		log.Infof("Formatted %s with %d blocks.", path, img.Len()/axiomfs.BlockSize)
		return nil
	})
}

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format IMAGE",
		Short: "Write a fresh AxiomFS header to an image",
		Long: `format writes a fresh AxiomFS header to the image, whatever it contained before.
The volume name is taken from --volume-name or the volume_name setting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.format(args[0])
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate IMAGE",
		Short: "Check whether an image contains a valid AxiomFS file system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return a.withImage(path, func(img *axiomfs.Image) error {
				h, err := axiomfs.ReadHeader(img)
				if err == nil {
					err = h.Validate()
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid AxiomFS %s file system\n", path, h.Version())
				return nil
			})
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		size   int64
		format bool
	)

	cmd := &cobra.Command{
		Use:   "create IMAGE",
		Short: "Create a new zero filled image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := axiomfs.CreateImage(a.fs, path, size); err != nil {
				return fmt.Errorf("the file system image could not be created: %w", err)
			}
			log.Infof("Created %s with %d bytes.", path, size)

			if !format {
				return nil
			}
			return a.format(path)
		},
	}

	cmd.Flags().Int64Var(&size, "size", defaultImageSize, "size of the image in bytes")
	cmd.Flags().BoolVar(&format, "format", false, "format the image after creating it")
	return cmd
}
