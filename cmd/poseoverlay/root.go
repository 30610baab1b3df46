package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/amacbride/pose-estimator"
	"github.com/amacbride/pose-estimator/render"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Options holds the command line configuration
type Options struct {
	OutputPath          string
	ModelFile           string
	Preview             bool
	DetectionConfidence float64
	TrackingConfidence  float64
	ModelComplexity     int
	WithFace            bool
}

// Version is the application version.
const Version = "0.1.0"

var opts Options

// modelFiles maps model complexity to the default ONNX model file
var modelFiles = map[int]string{
	pose.ComplexityLite:  "pose_landmark_lite.onnx",
	pose.ComplexityFull:  "pose_landmark_full.onnx",
	pose.ComplexityHeavy: "pose_landmark_heavy.onnx",
}

var rootCmd = &cobra.Command{
	Use:     "poseoverlay [flags] INPUT",
	Short:   "Draw a detected pose skeleton overlay onto video",
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOverlay(opts, args[0])
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// disable logging timestamps
	log.SetFlags(0)

	rootCmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Output video file path")
	rootCmd.Flags().StringVarP(&opts.ModelFile, "model", "m", "", "Landmark model ONNX file (default chosen by --complexity)")
	rootCmd.Flags().BoolVar(&opts.Preview, "preview", false, "Show live preview, press q to quit")
	rootCmd.Flags().Float64Var(&opts.DetectionConfidence, "detection-confidence", 0.5, "Minimum detection confidence (0.0-1.0)")
	rootCmd.Flags().Float64Var(&opts.TrackingConfidence, "tracking-confidence", 0.5, "Minimum tracking confidence (0.0-1.0)")
	rootCmd.Flags().IntVar(&opts.ModelComplexity, "complexity", pose.ComplexityFull, "Landmark model complexity, 0=lite 1=full 2=heavy")
	rootCmd.Flags().BoolVar(&opts.WithFace, "with-face", false, "Include face landmarks (eyes, ears, nose, mouth)")
}

// runOverlay processes the input video and writes the skeleton annotated
// output
func runOverlay(opts Options, inputPath string) error {

	cfg := pose.Config{
		DetectionConfidence: opts.DetectionConfidence,
		TrackingConfidence:  opts.TrackingConfidence,
		ModelComplexity:     opts.ModelComplexity,
	}

	// reject bad thresholds before opening any files
	if err := cfg.Validate(); err != nil {
		return err
	}

	modelFile := opts.ModelFile
	if modelFile == "" {
		modelFile = modelFiles[cfg.ModelComplexity]
	}

	src, err := pose.OpenVideoSource(inputPath)

	if err != nil {
		return err
	}

	defer src.Close()

	log.Printf("Input video: %s", filepath.Base(inputPath))
	log.Printf("Resolution: %dx%d, FPS: %.2f, Frames: %d",
		src.Width(), src.Height(), src.FPS(), src.TotalFrames())

	detector, err := pose.NewDNNDetector(modelFile, cfg)

	if err != nil {
		return err
	}

	defer detector.Close()

	policy := pose.ExcludeFace
	if opts.WithFace {
		policy = pose.IncludeAll
	}

	pipeline := &pose.Pipeline{
		Detector: detector,
		Policy:   policy,
		Renderer: render.NewSkeleton(),
	}

	if opts.OutputPath != "" {
		sink, err := pose.NewVideoSink(opts.OutputPath, src.FPS(),
			src.Width(), src.Height())

		if err != nil {
			return err
		}

		defer sink.Close()

		pipeline.Sink = sink
		log.Printf("Output video: %s", opts.OutputPath)
	}

	if opts.Preview {
		preview := pose.NewPreview("Pose Estimation")
		defer preview.Close()
		pipeline.Preview = preview

	} else {
		// batch mode, show a progress bar instead
		bar := progressbar.Default(int64(src.TotalFrames()), "processing")
		pipeline.Progress = func(frame int) {
			bar.Add(1)
		}
	}

	stats, runErr := pipeline.Run(src)

	// report what was processed even after a mid run failure, partial
	// output already written is preserved
	log.Printf("Processed %d frames, pose detected in %d (%.1f%%)",
		stats.FramesProcessed, stats.FramesDetected,
		stats.DetectionRate()*100)

	if stats.FramesDetected > 0 {
		log.Printf("Mean landmark visibility: %.2f", stats.MeanVisibility())
	}

	if opts.OutputPath != "" && runErr == nil {
		log.Printf("Output saved to: %s", opts.OutputPath)
	}

	return runErr
}
