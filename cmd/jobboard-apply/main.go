// Command jobboard-apply walks an application form in the terminal and
// submits the answers for a job.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-jobboard/pkg/application"
	"github.com/goliatone/go-jobboard/pkg/board"
	"github.com/goliatone/go-jobboard/pkg/config"
	"github.com/goliatone/go-jobboard/pkg/greenhouse"
	"github.com/goliatone/go-jobboard/pkg/renderers/tui"
)

func main() {
	var (
		jobFlag    = flag.String("job", "", "job id to apply to")
		configFlag = flag.String("config", "", "YAML configuration file")
		envFlag    = flag.String("env", ".env", "dotenv file loaded before config")
	)
	flag.Parse()

	if *jobFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: jobboard-apply -job <id>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := godotenv.Load(*envFlag); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	client, err := greenhouse.New(cfg.Greenhouse.APIKey, cfg.Greenhouse.UserID,
		greenhouse.WithBaseURL(cfg.Greenhouse.BaseURL))
	if err != nil {
		log.Fatalf("greenhouse: %v", err)
	}

	pipeline, err := application.NewPipeline(client)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}

	service, err := board.New(client, board.WithSubmitter(pipeline))
	if err != nil {
		log.Fatalf("board: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view, err := service.GetJob(ctx, *jobFlag)
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			log.Fatalf("job %s is not open for applications", *jobFlag)
		}
		log.Fatalf("job %s: %v", *jobFlag, err)
	}

	fmt.Printf("Applying to: %s\n\n", view.Job.Name)

	record, err := tui.NewFlow().Run(ctx, view.Form)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("Aborted.")
			return
		}
		log.Fatalf("prompt: %v", err)
	}

	receipt, err := service.SubmitApplication(ctx, *jobFlag, record)
	if err != nil {
		var serr *application.SubmissionError
		if errors.As(err, &serr) {
			log.Fatalf("submission rejected: %s", serr.Message)
		}
		log.Fatalf("submit: %v", err)
	}

	fmt.Printf("Application submitted. Candidate %d", receipt.CandidateID)
	if receipt.ApplicationID != 0 {
		fmt.Printf(", application %d", receipt.ApplicationID)
	}
	fmt.Println(".")
}
