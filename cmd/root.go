package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/menupix/menupix/internal/models"
	"github.com/menupix/menupix/internal/pipeline"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "menupix",
	Short: "Extracts the weekly cafe menu board into structured data with generated artwork",
	Long: `menupix downloads the photographed cafe menu board, extracts it into a
structured weekly menu document with a vision model, picks one highlight
per day and per priority category, illustrates each highlight with a
generated (or procedurally rendered) image, and writes the result as JSON
for the display dashboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd)

		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			log.Error("loading config", "error", err)
			os.Exit(1)
		}

		p, err := pipeline.New(cfg)
		if err != nil {
			log.Error("menu update failed", "error", err)
			os.Exit(1)
		}
		if err := p.Run(context.Background()); err != nil {
			log.Error("menu update failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(func() {
		// credentials may live in a local .env
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./menupix.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.Flags().String("menu-file", "data/menu.json", "Path to the menu document")
	rootCmd.Flags().String("assets-dir", "assets/menu", "Directory for generated images")
	rootCmd.Flags().Bool("skip-extract", false, "Reuse the existing menu document instead of fetching and extracting")
	rootCmd.Flags().Bool("skip-images", false, "Skip image generation, reusing recorded highlight metadata if present")
	rootCmd.Flags().Bool("today-only", false, "Generate only the current weekday's daily highlight image")
	rootCmd.Flags().Bool("print", false, "Also echo the final document to standard output")

	bindings := map[string]string{
		"menu_file":    "menu-file",
		"assets_dir":   "assets-dir",
		"skip_extract": "skip-extract",
		"skip_images":  "skip-images",
		"today_only":   "today-only",
		"print":        "print",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			cobra.CheckErr(err)
		}
	}
}

func setupLogger(cmd *cobra.Command) {
	level, err := cmd.PersistentFlags().GetString("log-level")
	if err != nil {
		level = "info"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetReportTimestamp(true)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
