package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/boothlab/photowall/internal/config"
	"github.com/boothlab/photowall/internal/logging"
	"github.com/boothlab/photowall/internal/media"
	"github.com/boothlab/photowall/internal/source"
	"github.com/boothlab/photowall/internal/wall"
)

var (
	configFile string
	preset     string
	sourceURL  string
	event      string
	sizeTier   string
	syncEvery  time.Duration
	frameRate  int
	logFile    string
	dataDir    string
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "photowall",
		Short: "event photobooth gallery wall",
		RunE:  runWall,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "source", "", "record source base url")
	rootCmd.PersistentFlags().StringVar(&event, "event", "", "event scope")
	rootCmd.Flags().StringVar(&preset, "preset", "", "wall preset (calm|crowded|lively)")
	rootCmd.Flags().StringVar(&sizeTier, "size", "", "tile size tier (small|medium|large)")
	rootCmd.Flags().DurationVar(&syncEvery, "interval", 0, "record sync interval")
	rootCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")
	rootCmd.Flags().StringVar(&logFile, "log", "", "log file path")

	sourceCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the local record source server",
		RunE:  runSource,
	}
	sourceCmd.Flags().StringVar(&addr, "addr", ":8787", "listen address")
	sourceCmd.Flags().StringVar(&dataDir, "data", ".photowall", "data directory")

	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "list records from the source",
		RunE:  listRecords,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "photowall.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list wall presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(sourceCmd, recordsCmd, initCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if sourceURL != "" {
		cfg.SourceURL = sourceURL
	}
	if event != "" {
		cfg.Event = event
	}
	if sizeTier != "" {
		cfg.SizeTier = sizeTier
	}
	if syncEvery > 0 {
		cfg.SyncSeconds = syncEvery.Seconds()
	}
	if frameRate > 0 {
		cfg.FrameRate = frameRate
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, cfg.Validate()
}

func runWall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	src := media.NewHTTPSource(cfg.SourceURL, cfg.Event)
	hooks := wall.Hooks{
		OnSelect: func(rec media.Record) {
			log.Infow("record selected", "id", rec.ID, "concept", rec.ConceptName)
		},
		OnExit: func() {
			log.Infow("wall exited")
		},
	}
	log.Infow("wall starting",
		"source", cfg.SourceURL, "event", cfg.Event,
		"tier", cfg.SizeTier, "interval", cfg.SyncEvery())
	return wall.Run(cfg, src, log, hooks)
}

func runSource(cmd *cobra.Command, args []string) error {
	log, err := logging.NewConsole()
	if err != nil {
		return err
	}
	defer log.Sync()

	store := source.NewStore(dataDir)
	if err := store.Load(); err != nil {
		return err
	}
	return source.NewServer(store, log).Run(addr)
}

func listRecords(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := media.NewHTTPSource(cfg.SourceURL, cfg.Event).Fetch(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCONCEPT\tKIND\tCREATED")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.ID, rec.ConceptName, rec.Kind, rec.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
