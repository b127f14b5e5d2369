// QueueWatch - occupancy and dwell-time monitoring for a video stream
//
// Reads frames from a file or camera, detects and tracks people, runs
// the queue engine against a configured region, and publishes counts
// and alerts to the dashboard, metrics, sinks, and an annotated video.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"gocv.io/x/gocv"

	"github.com/queuewatch/go-queuewatch/internal/config"
	"github.com/queuewatch/go-queuewatch/internal/log"
	"github.com/queuewatch/go-queuewatch/internal/metrics"
	"github.com/queuewatch/go-queuewatch/pkg/annotate"
	"github.com/queuewatch/go-queuewatch/pkg/detection"
	"github.com/queuewatch/go-queuewatch/pkg/notify"
	"github.com/queuewatch/go-queuewatch/pkg/queue"
	"github.com/queuewatch/go-queuewatch/pkg/video"
	"github.com/queuewatch/go-queuewatch/pkg/web"
)

func main() {
	defaults := queue.DefaultConfig()

	videoSrc := flag.String("video", config.Env("VIDEO_SOURCE", "0"), "Video file, URL, or camera index")
	regionPath := flag.String("region", config.Env("REGION_FILE", "region.json"), "Region JSON file (from region-select)")
	outputPath := flag.String("output", "", "Annotated output video path (empty = no file)")
	modelPath := flag.String("model", config.Env("MODEL_PATH", config.DefaultModelPath), "YOLO ONNX model path")
	port := flag.String("port", config.Env("DASHBOARD_PORT", config.DefaultDashboardPort), "Dashboard HTTP port")
	congestion := flag.Int("congestion", config.EnvInt("CONGESTION_THRESHOLD", defaults.CongestionThreshold), "Inside-count above which congestion alerts fire")
	dwell := flag.Duration("dwell", config.EnvDuration("DWELL_THRESHOLD", defaults.DwellThreshold), "Dwell time above which a dwell alert fires")
	staleness := flag.Duration("staleness", config.EnvDuration("STALENESS_WINDOW", defaults.StalenessWindow), "Unseen time after which a track is evicted")
	webhookURL := flag.String("webhook", config.Env("ALERT_WEBHOOK", ""), "Webhook URL for alert events")
	wsURL := flag.String("ws-sink", config.Env("ALERT_WS", ""), "WebSocket URL for alert events")
	hideCount := flag.Bool("hide-count", false, "Hide the queue count overlay")
	logLevel := flag.String("log-level", config.Env("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	region, err := config.LoadRegion(*regionPath)
	if err != nil {
		log.Error("load region", "err", err)
		return
	}

	cfg := queue.Config{
		CongestionThreshold: *congestion,
		DwellThreshold:      *dwell,
		StalenessWindow:     *staleness,
	}
	engine, err := queue.NewEngine(region, cfg, log.L())
	if err != nil {
		log.Error("configure engine", "err", err)
		return
	}

	src, err := video.Open(*videoSrc)
	if err != nil {
		log.Error("open video", "err", err)
		return
	}
	defer src.Close()

	yoloCfg := detection.DefaultYOLOConfig()
	yoloCfg.ModelPath = *modelPath
	detector, err := detection.NewYOLO(yoloCfg)
	if err != nil {
		log.Error("load detector", "err", err)
		return
	}
	defer detector.Close()

	tracker := detection.NewTracker(detection.DefaultTrackerConfig())
	annotator := annotate.New(region)
	defer annotator.Close()
	if *hideCount {
		annotator.HideCount()
	}

	var writer *video.Writer
	if *outputPath != "" {
		w, h := src.Size()
		writer, err = video.NewWriter(*outputPath, src.FPS(), w, h)
		if err != nil {
			log.Error("open output video", "err", err)
			return
		}
		defer writer.Close()
	}

	m := metrics.New()
	server := web.NewServer(*port, region, cfg, m)
	go func() {
		if err := server.Start(); err != nil {
			log.Error("dashboard stopped", "err", err)
		}
	}()
	defer server.Shutdown()

	var sinks []notify.Sink
	if *webhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(*webhookURL))
	}
	if *wsURL != "" {
		sinks = append(sinks, notify.NewWSSink(*wsURL))
	}
	notifier := notify.NewNotifier(sinks...)
	defer notifier.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("queuewatch started",
		"video", *videoSrc, "fps", src.FPS(),
		"congestion_threshold", cfg.CongestionThreshold,
		"dwell_threshold", cfg.DwellThreshold,
		"staleness_window", cfg.StalenessWindow)

	run(ctx, src, detector, tracker, engine, annotator, writer, server, notifier, m)
	log.Info("queuewatch stopped")
}

// run drives the frame loop until the source ends or ctx is cancelled.
// One goroutine owns the whole loop: frames must reach the engine in
// order.
func run(
	ctx context.Context,
	src video.Source,
	detector detection.Detector,
	tracker *detection.Tracker,
	engine *queue.Engine,
	annotator *annotate.Annotator,
	writer *video.Writer,
	server *web.Server,
	notifier *notify.Notifier,
	m *metrics.Metrics,
) {
	frame := gocv.NewMat()
	defer frame.Close()

	framePeriod := time.Duration(float64(time.Second) / src.FPS())
	start := time.Now()
	frameIdx := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !src.Read(&frame) {
			return
		}
		if frame.Empty() {
			continue
		}

		// Frame-index-derived timestamps keep dwell math exact for
		// file replay, where wall-clock time runs faster than video
		// time.
		now := start.Add(time.Duration(frameIdx) * framePeriod)
		frameIdx++

		began := time.Now()

		dets, err := detector.Detect(frame)
		if err != nil {
			log.Warn("detection failed, skipping frame", "err", err)
			continue
		}
		tracks := tracker.Update(dets)

		obs := make([]queue.Detection, 0, len(tracks))
		for _, tr := range tracks {
			obs = append(obs, queue.Detection{
				ID: tr.ID,
				X1: float64(tr.Box.Min.X), Y1: float64(tr.Box.Min.Y),
				X2: float64(tr.Box.Max.X), Y2: float64(tr.Box.Max.Y),
			})
		}

		res := engine.ProcessFrame(now, obs)

		m.ObserveFrame(res, time.Since(began))
		server.PublishResult(res)
		notifier.PublishResult(res)

		annotator.Draw(&frame, tracks, res)
		if writer != nil {
			if err := writer.Write(frame); err != nil {
				log.Warn("write output frame", "err", err)
			}
		}
		publishJPEG(server, frame)

		for _, w := range res.Warnings {
			log.Debug("frame warning", "id", w.ID, "reason", w.Reason)
		}
	}
}

// publishJPEG encodes and broadcasts the annotated frame for dashboard
// viewers. Encoding is skipped when nobody is watching.
func publishJPEG(server *web.Server, frame gocv.Mat) {
	if server.CameraViewers() == 0 {
		return
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return
	}
	defer buf.Close()
	server.PublishFrame(buf.GetBytes())
}
