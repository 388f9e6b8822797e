package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/axiomfs/axiomfs"
)

const version = "0.1.0-dev"

// app is the state shared by all commands.
type app struct {
	fs     afero.Fs
	viper  *viper.Viper
	config *Config

	configFile string
	verbose    bool
	quiet      bool
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{
		fs:    fsys,
		viper: viper.New(),
	}

	cmd := &cobra.Command{
		Use:   "axiomfs IMAGE",
		Short: "Open an AxiomFS image and show its header",
		Long: `axiomfs opens an AxiomFS file system image and prints the information
stored in its header.

If the image does not contain a valid AxiomFS file system yet, it gets
formatted first (disable with --auto-format=false).`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show(cmd.OutOrStdout(), args[0])
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is axiomfs.yaml in ., $HOME/.axiomfs or /etc/axiomfs)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress output except errors")
	flags.String("volume-name", axiomfs.DefaultVolumeName, "volume name used when formatting")
	cmd.Flags().Bool("auto-format", true, "format the image if it contains no valid file system")

	// Lookup never returns nil for the flags defined above.
	_ = a.viper.BindPFlag("volume_name", flags.Lookup("volume-name"))
	_ = a.viper.BindPFlag("auto_format", cmd.Flags().Lookup("auto-format"))

	cmd.AddCommand(
		newFormatCmd(a),
		newValidateCmd(a),
		newCreateCmd(a),
	)

	return cmd
}

func (a *app) init() error {
	config, err := loadConfig(a.viper, a.configFile)
	if err != nil {
		return err
	}
	a.config = config

	return setupLogging(config.LogLevel, a.verbose, a.quiet)
}

// show opens the image, formats it if needed and prints its header.
func (a *app) show(out io.Writer, path string) error {
	return a.withImage(path, func(img *axiomfs.Image) error {
		if !axiomfs.IsValid(img) {
			if !a.config.AutoFormat {
				return fmt.Errorf("%s: %w", path, axiomfs.ErrInvalidFormat)
			}

			log.Warn("The image does not contain a valid AxiomFS file system. Formatting the image...")
			if err := axiomfs.Format(img, a.config.VolumeName); err != nil {
				return fmt.Errorf("the image could not be formatted: %w", err)
			}
			log.Info("Successfully formatted the image.")
		}

		fs, err := axiomfs.Open(img)
		if err != nil {
			return fmt.Errorf("the file system could not be opened: %w", err)
		}

		stat, err := fs.Stat()
		if err != nil {
			_ = fs.Close()
			return fmt.Errorf("the file system header could not be read: %w", err)
		}
		printStat(out, stat, a.config.TimeFormat)

		if err := fs.Close(); err != nil {
			return fmt.Errorf("the file system could not be closed: %w", err)
		}
		return nil
	})
}

func printStat(w io.Writer, s axiomfs.Stat, timeFormat string) {
	fmt.Fprintf(w, "Volume name: %s\n", s.VolumeName)
	if s.HasVolumeID() {
		fmt.Fprintf(w, "Volume ID: %s\n", s.VolumeID)
	}
	fmt.Fprintf(w, "Creation datetime: %s\n", s.Created.Format(timeFormat))
	fmt.Fprintf(w, "File system version: %s\n", s.Version)
	fmt.Fprintf(w, "Number of 4 KiB blocks: %d\n", s.BlockCount)
	fmt.Fprintf(w, "Number of blocks used: %d\n", s.UsedBlockCount)
	fmt.Fprintf(w, "Number of blocks free: %d\n", s.FreeBlockCount)
}
