package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/internal/videos"
	"github.com/wizqo2024/wizqo-sub002/shared/ai"
	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/monitoring"
)

// ErrInvalidRequest is returned when a required plan field is missing.
var ErrInvalidRequest = errors.New("invalid plan request")

// VideoSource attaches a tutorial video to a plan day.
type VideoSource interface {
	VideoFor(ctx context.Context, hobby string, day int) videos.Choice
}

// Generator builds 7-day plans, using the LLM when one is configured.
type Generator struct {
	llm          ai.Completer
	videos       VideoSource
	affiliateTag string
	log          *logging.Logger
	metrics      *monitoring.Metrics
	monitor      *monitoring.Monitor
}

type Options struct {
	LLM          ai.Completer
	Videos       VideoSource
	AffiliateTag string
	Logger       *logging.Logger
	Metrics      *monitoring.Metrics
	Monitor      *monitoring.Monitor
}

func New(opts Options) *Generator {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Videos == nil {
		opts.Videos = videos.NewSelector(nil, nil, opts.Logger, opts.Metrics, nil)
	}
	return &Generator{
		llm:          opts.LLM,
		videos:       opts.Videos,
		affiliateTag: opts.AffiliateTag,
		log:          opts.Logger,
		metrics:      opts.Metrics,
		monitor:      opts.Monitor,
	}
}

// Generate returns a plan with exactly 7 days, each with a video. Only a
// malformed request is an error; upstream failures fall back to the template.
func (g *Generator) Generate(ctx context.Context, req models.PlanRequest) (*models.Plan, error) {
	req.Hobby = strings.TrimSpace(req.Hobby)
	if req.Hobby == "" || strings.TrimSpace(req.Experience) == "" || strings.TrimSpace(req.TimeAvailable) == "" {
		return nil, fmt.Errorf("%w: hobby, experience and timeAvailable are required", ErrInvalidRequest)
	}

	plan := g.generate(ctx, req)

	for i := range plan.Days {
		day := &plan.Days[i]
		day.Day = i + 1
		choice := g.videos.VideoFor(ctx, req.Hobby, day.Day)
		day.YouTubeVideoID = choice.VideoID
		day.VideoTitle = choice.Title
		day.AffiliateProducts = affiliateProducts(req.Hobby, day.Day, g.affiliateTag)
		day.FreeResources = freeResources(req.Hobby, day.Day)
	}

	if g.metrics != nil {
		generator := plan.GeneratedBy
		if strings.HasPrefix(generator, "ai:") {
			generator = "ai"
		}
		g.metrics.PlansGenerated.WithLabelValues(generator).Inc()
	}
	g.log.Info("plan generated", "hobby", req.Hobby, "experience", req.Experience, "generatedBy", plan.GeneratedBy)
	return plan, nil
}

func (g *Generator) generate(ctx context.Context, req models.PlanRequest) *models.Plan {
	if g.llm == nil {
		return templatePlan(req)
	}

	start := time.Now()
	plan, err := llmGenerate(ctx, g.llm, req)
	if err != nil {
		if g.metrics != nil {
			g.metrics.LLMCalls.WithLabelValues("plan", "fallback").Inc()
		}
		if g.monitor != nil {
			g.monitor.RecordFailure("llm", err, time.Since(start))
		}
		g.log.Warn("LLM plan generation failed, using template", "hobby", req.Hobby, "error", err)
		return templatePlan(req)
	}

	if g.metrics != nil {
		g.metrics.LLMCalls.WithLabelValues("plan", "ok").Inc()
	}
	if g.monitor != nil {
		g.monitor.RecordSuccess("llm", "plan generated", time.Since(start))
	}
	return plan
}
