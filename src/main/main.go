package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"screen-answer-clicker/src/ai"
	"screen-answer-clicker/src/answer"
	"screen-answer-clicker/src/click"
	"screen-answer-clicker/src/clipboard"
	"screen-answer-clicker/src/cluster"
	"screen-answer-clicker/src/config"
	"screen-answer-clicker/src/eventloop"
	"screen-answer-clicker/src/geometry"
	"screen-answer-clicker/src/hotkey"
	"screen-answer-clicker/src/logutil"
	"screen-answer-clicker/src/ocr"
	"screen-answer-clicker/src/pointer"
	"screen-answer-clicker/src/screenshot"
	"screen-answer-clicker/src/singleinstance"
	"screen-answer-clicker/src/target"
)

// normalizeFlagDashes maps GNU-style --once / --copy-once to Go's single-dash form.
func normalizeFlagDashes() {
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case strings.HasPrefix(arg, "--once"):
			os.Args[i] = arg[1:]
		case strings.HasPrefix(arg, "--copy-once"):
			os.Args[i] = arg[1:]
		}
	}
}

func main() {
	once := flag.Bool("once", false, "Run one find-and-click pass and exit")
	copyOnce := flag.Bool("copy-once", false, "Copy the model's answer to the clipboard and exit")
	normalizeFlagDashes()
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	if cfg.APIKey == "" {
		log.Fatalf("GEMINI_API_KEY is required. Please set it in your .env file.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline, err := buildPipeline(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	log.Printf("Screen answer clicker initialized")
	log.Printf("Using model: %s (key %s)", cfg.Model, logutil.RedactKey(cfg.APIKey))
	log.Printf("Click backend: %s, rule: %s", cfg.ClickBackend, cfg.ClickRule)

	if *once {
		runOnce(ctx, pipeline, eventloop.TriggerAnswer)
		return
	}
	if *copyOnce {
		runOnce(ctx, pipeline, eventloop.TriggerCopy)
		return
	}

	// Exactly one resident may own the virtual input device.
	release, err := singleinstance.Claim()
	if err != nil {
		fmt.Fprintf(os.Stderr, "one is already running (port %d)\n", singleinstance.PortForDebug())
		os.Exit(1)
	}
	defer release()

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard backend unavailable, will use external tools: %v", err)
	}

	loop := eventloop.New(eventloop.Tasks{
		Answer: pipeline.answerTask(),
		Copy:   pipeline.copyTask(),
	}, cfg.PassDeadline)

	answerKey, ok := hotkey.ParseKey(cfg.AnswerKey)
	if !ok {
		log.Fatalf("ANSWER_KEY must be a single character, got %q", cfg.AnswerKey)
	}
	copyKey, ok := hotkey.ParseKey(cfg.CopyKey)
	if !ok {
		log.Fatalf("COPY_KEY must be a single character, got %q", cfg.CopyKey)
	}
	hotkey.Listen([]hotkey.Binding{
		{Key: answerKey, Action: func() { loop.Post(eventloop.TriggerAnswer) }},
		{Key: copyKey, Action: func() { loop.Post(eventloop.TriggerCopy) }},
	})
	defer hotkey.Stop()

	log.Printf("Listening: %q clicks the answer, %q copies it", cfg.AnswerKey, cfg.CopyKey)

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("event loop stopped: %v", err)
	}
}

// pipeline binds the configured collaborators into answer.Options.
type pipeline struct {
	cfg    *config.Config
	client *ai.Client
}

func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	client, err := ai.New(ctx, ai.Config{
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		Temperature:  0.75,
		EnableSearch: cfg.EnableSearch,
		Retries:      cfg.AIRetries,
	})
	if err != nil {
		return nil, err
	}
	return &pipeline{cfg: cfg, client: client}, nil
}

func (p *pipeline) options() answer.Options {
	cfg := p.cfg
	capturer := screenshot.Capturer{}

	rule, err := target.ParseRule(cfg.ClickRule)
	if err != nil {
		log.Printf("invalid CLICK_RULE %q, using random: %v", cfg.ClickRule, err)
		rule = target.RuleRandom
	}
	backend, err := pointer.ParseBackend(cfg.ClickBackend)
	if err != nil {
		log.Printf("invalid CLICK_BACKEND %q, using auto: %v", cfg.ClickBackend, err)
		backend = pointer.BackendAuto
	}
	button, err := pointer.ParseButton(cfg.ClickButton)
	if err != nil {
		log.Printf("invalid CLICK_BUTTON %q, using left: %v", cfg.ClickButton, err)
		button = pointer.ButtonLeft
	}

	return answer.Options{
		Capture: func() (string, error) {
			return capturer.CaptureToFile(cfg.ScreenshotDir)
		},
		Extract: func(imagePath string) ([]cluster.TextChunk, error) {
			return ocr.ExtractChunks(imagePath, ocr.Options{
				Mode: ocr.ModeChunk,
				Cluster: cluster.Config{
					XThresh:      cfg.XThresh,
					YThresh:      cfg.YThresh,
					GroupYThresh: cfg.GroupYThresh,
				},
				Visualize:     cfg.Visualize,
				VisualizePath: filepath.Join(cfg.ScreenshotDir, "ocr_bboxes.png"),
			})
		},
		Ask: func(ctx context.Context, imagePath string) ([]string, error) {
			ans, err := p.client.AnswerQuestion(ctx, imagePath, "")
			if err != nil {
				return nil, err
			}
			return ans.CorrectOptions, nil
		},
		Click: func(rect geometry.Rect) (int, int, error) {
			opts := click.DefaultOptions()
			opts.Rule = rule
			opts.Backend = backend
			opts.Button = button
			opts.Margin = cfg.ClickMargin
			opts.MoveDuration = cfg.MoveDuration
			opts.MoveSteps = cfg.MoveSteps
			return click.Rect(rect, opts)
		},
		Copy: clipboard.Write,
	}
}

func (p *pipeline) answerTask() func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		res, err := answer.FindAndClick(ctx, p.options())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("clicked %d of %d option(s)", len(res.Clicked), len(res.Options)), nil
	}
}

func (p *pipeline) copyTask() func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		options, err := answer.CopyAnswer(ctx, p.options())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("copied %d option(s) to clipboard", len(options)), nil
	}
}

func runOnce(ctx context.Context, p *pipeline, trigger eventloop.Trigger) {
	var summary string
	var err error
	switch trigger {
	case eventloop.TriggerCopy:
		if cerr := clipboard.Init(); cerr != nil {
			log.Printf("clipboard backend unavailable, will use external tools: %v", cerr)
		}
		summary, err = p.copyTask()(ctx)
	default:
		summary, err = p.answerTask()(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(summary)
}
