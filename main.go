package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"queue-analytics/config"
	"queue-analytics/errors"
	"queue-analytics/forecaster"
	"queue-analytics/formatter"
	"queue-analytics/health"
	"queue-analytics/metrics"
	"queue-analytics/models"
	"queue-analytics/optimizer"
	"queue-analytics/parser"
	"queue-analytics/predictor"
	"queue-analytics/priority"
)

func main() {
	// A .env file can carry QUEUE_CONFIG / QUEUE_FORECAST_BASE_RATE.
	_ = godotenv.Load()

	// Define flags
	op := flag.String("op", "", "Operation: predict|assign|forecast|score|health (required)")
	input := flag.String("input", "", "Input JSON request file (required)")
	cfgPath := flag.String("config", "", "Optional tuning YAML file")
	format := flag.String("format", "text", "Output format: text|json|csv")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	validOps := map[string]bool{"predict": true, "assign": true, "forecast": true, "score": true, "health": true}
	if !validOps[*op] {
		fmt.Printf("Error: -op must be one of: predict, assign, forecast, score, health (got: %s)\n", *op)
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	tuning, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("Error loading tuning config: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Open(*input)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	req, err := parser.Parse(file)
	if err != nil {
		fmt.Printf("Error parsing request: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	report, err := run(tuning, req, *op, now)
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			metrics.ParserErrorsTotal.WithLabelValues(pe.Section).Inc()
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(report))
	case "csv":
		fmt.Print(formatter.FormatCSV(report))
	default: // "text"
		fmt.Print(formatter.FormatText(report))
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "queue_analytics"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}

// run dispatches one operation and records its metrics.
func run(tuning *config.Tuning, req *parser.Request, op string, now time.Time) (*formatter.Report, error) {
	started := time.Now()
	defer func() {
		metrics.OperationDurationSeconds.WithLabelValues(op).Observe(time.Since(started).Seconds())
	}()
	metrics.ResetGauges()
	metrics.OperationsTotal.WithLabelValues(op).Inc()

	report := formatter.New(op, now)

	switch op {
	case "predict":
		snap, class, err := req.PredictInput()
		if err != nil {
			return nil, err
		}
		pred := safePredict(tuning, snap, class, now)
		metrics.PredictedWaitMinutes.Observe(pred.EstimatedMinutes)
		metrics.PredictionConfidence.Set(pred.Confidence)
		report.Prediction = &pred

	case "assign":
		counters, serviceType, class, err := req.AssignInput()
		if err != nil {
			return nil, err
		}
		assignment := optimizer.Assign(counters, serviceType, class)
		if assignment.CounterID == "" {
			metrics.AssignmentsNoCounterTotal.Inc()
		} else {
			metrics.AssignmentWinnerScore.Set(assignment.Score)
		}
		report.Assignment = &assignment

	case "forecast":
		records, target, serviceType, err := req.ForecastInput()
		if err != nil {
			return nil, err
		}
		fc := forecaster.New(tuning).Forecast(records, target, serviceType)
		metrics.ForecastExpectedTickets.Set(fc.TotalExpectedTickets)
		report.Forecast = &fc

	case "score":
		class, age, hasAppointment, urgency, err := req.ScoreInput()
		if err != nil {
			return nil, err
		}
		score := priority.New(tuning).Score(class, age, hasAppointment, urgency)
		report.Score = &score

	case "health":
		m, err := req.HealthInput()
		if err != nil {
			return nil, err
		}
		result := health.Analyze(m)
		metrics.HealthScore.Set(float64(result.HealthScore))
		report.Health = &result
	}

	return report, nil
}

// safePredict degrades to the fixed conservative default instead of failing
// the request: an approximate estimate beats no estimate for a live
// waiting-room display.
func safePredict(tuning *config.Tuning, snap models.QueueSnapshot, class models.PriorityClass, now time.Time) (pred models.Prediction) {
	defer func() {
		if r := recover(); r != nil {
			metrics.PredictionFallbacksTotal.Inc()
			pred = predictor.Fallback(now)
		}
	}()
	return predictor.New(tuning).Predict(snap, class, now)
}
