package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/deck"
	"github.com/ivlev/scrollwave/internal/engine"
	"github.com/ivlev/scrollwave/internal/layout"
	"github.com/ivlev/scrollwave/internal/motif"
	"github.com/ivlev/scrollwave/internal/script"
	"github.com/ivlev/scrollwave/internal/system"
	"github.com/ivlev/scrollwave/internal/video"
	"github.com/ivlev/scrollwave/internal/view"
)

const buildVersion = "1.0.0"

func main() {
	// Raise system limits (macOS/Linux)
	system.InitResourceLimits()

	// Make sure the working directories exist
	dirs := []string{"input/pdf", "output", "scripts"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "PDF path, image folder, or 'demo' (default: newest PDF in input/pdf/)")
	outputPtr := flag.String("output", "", "Video path (auto-generated in output/ when empty)")
	slidesPtr := flag.Int("slides", 5, "Slide count for the demo deck")
	linkPtr := flag.String("link", "", "URL rendered as a QR code on the demo deck's last slide")
	presetPtr := flag.String("motif", "", "Motif preset YAML (default: built-in wave)")
	scriptPtr := flag.String("script", "", "Scroll session script YAML (default: generated walkthrough)")
	genScriptPtr := flag.Bool("gen-script", false, "Generate a walkthrough script, save it and exit")
	widthPtr := flag.Int("width", 1280, "Width")
	heightPtr := flag.Int("height", 720, "Height")
	fpsPtr := flag.Int("fps", 30, "FPS")
	formatPtr := flag.String("format", "", "Frame preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	dpiPtr := flag.Int("dpi", 150, "DPI for PDF rasterization")
	workersPtr := flag.Int("workers", 0, "Prerender workers (0 = sized from CPU and memory)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto; x264: CRF, VideoToolbox: bitrate = Q*100kbit/s)")
	snapDelayPtr := flag.Duration("snap-delay", 0, "Idle delay before snapping (0 = default)")
	snapDurPtr := flag.Duration("snap-duration", 0, "Snap animation length (0 = default)")
	snapBiasPtr := flag.Float64("snap-bias", 0, "Forward bias when picking the snap target")
	statsPtr := flag.Bool("stats", false, "Print a performance report")

	flag.Parse()

	width, height := *widthPtr, *heightPtr
	switch *formatPtr {
	case "16:9":
		width, height = 1280, 720
	case "9:16":
		width, height = 720, 1280
	case "4:5":
		width, height = 1080, 1350
	}

	cfg := config.Default()
	cfg.FPS = *fpsPtr
	if *snapDelayPtr > 0 {
		cfg.GravityIdleDelay = *snapDelayPtr
	}
	if *snapDurPtr > 0 {
		cfg.GravityDuration = *snapDurPtr
	}
	if *snapBiasPtr != 0 {
		cfg.GravityBias = *snapBiasPtr
	}

	d, inputPath := openDeck(*inputPtr, *slidesPtr, width, height, *linkPtr)
	defer d.Close()

	slideCount := d.SlideCount()
	if slideCount == 0 {
		log.Fatalf("[-] Error: the deck has no slides")
	}

	preset := motif.DefaultPreset()
	if *presetPtr != "" {
		p, err := motif.ReadPreset(*presetPtr)
		if err != nil {
			log.Fatalf("[-] Failed to read motif preset: %v", err)
		}
		preset = *p
		fmt.Printf("[*] Motif preset: %s\n", *presetPtr)
	}

	lay := layout.New(slideCount, slideCount-1)

	if *genScriptPtr {
		s, err := script.NewGenerator().Walkthrough(lay, cfg)
		if err != nil {
			log.Fatalf("[-] Script generation failed: %v", err)
		}
		outPath := *scriptPtr
		if outPath == "" {
			outPath = script.GeneratePath()
		}
		os.MkdirAll(filepath.Dir(outPath), 0755)
		if err := script.Write(s, outPath); err != nil {
			log.Fatalf("[-] Failed to write script: %v", err)
		}
		fmt.Printf("[+++] Success! Script saved: %s\n", outPath)
		return
	}

	var sess *script.Script
	if *scriptPtr != "" {
		s, err := script.Read(*scriptPtr)
		if err != nil {
			log.Fatalf("[-] Failed to read script: %v", err)
		}
		sess = s
		fmt.Printf("[*] Session script: %s\n", *scriptPtr)
	} else {
		s, err := script.NewGenerator().Walkthrough(lay, cfg)
		if err != nil {
			log.Fatalf("[-] Script generation failed: %v", err)
		}
		sess = s
	}

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware encoder detected: %s\n", encoderName)
	}

	quality := *qualityPtr
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75
		case "h264_nvenc":
			quality = 28
		default:
			quality = 23
		}
	}

	outputPath := *outputPtr
	if outputPath == "" {
		baseName := filepath.Base(inputPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outputPath = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}

	opts := view.DefaultCanvasOptions()
	opts.Width, opts.Height = width, height
	opts.Variant = preset.Variant

	enc := video.NewFFmpegEncoder(video.Options{
		Width:   width,
		Height:  height,
		FPS:     cfg.FPS,
		Encoder: encoderName,
		Quality: quality,
	})

	project := &engine.Project{
		Cfg:        cfg,
		Deck:       d,
		Script:     sess,
		Preset:     preset,
		Canvas:     opts,
		Encoder:    enc,
		DPI:        *dpiPtr,
		Workers:    *workersPtr,
		OutputPath: outputPath,
		ShowStats:  *statsPtr,
		BuildVer:   buildVersion,
	}

	if err := project.Run(context.Background()); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}
}

// openDeck resolves the -input flag into a slide deck.
func openDeck(input string, demoSlides, width, height int, link string) (deck.Deck, string) {
	if input == "demo" {
		return deck.NewDemoDeck(demoSlides, width, height, link), "demo"
	}

	if input == "" {
		latest, err := system.FindLatestPDF("input/pdf")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a PDF into input/pdf/ or use -input demo", err)
		}
		input = latest
		fmt.Printf("[*] Selected file: %s\n", input)
	}

	if strings.HasSuffix(strings.ToLower(input), ".pdf") {
		d, err := deck.NewFitzDeck(input)
		if err != nil {
			log.Fatalf("[-] Failed to open deck: %v", err)
		}
		return d, input
	}

	d, err := deck.NewImageDeck(input)
	if err != nil {
		log.Fatalf("[-] Failed to open deck: %v", err)
	}
	return d, input
}
