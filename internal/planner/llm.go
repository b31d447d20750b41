package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/shared/ai"
)

var errNoDays = errors.New("LLM plan has no days")

const planPrompt = `Create a 7-day learning plan for the hobby %q.
Experience level: %s
Time available per day: %s
Goal: %s

Day themes, in order: Basics, Fundamentals, Core techniques, Practice, Intermediate skills, Projects, Review & next steps.

Respond with ONLY a JSON object in exactly this shape, no markdown, no extra keys:
{
  "title": "plan title",
  "overview": "two sentence overview",
  "difficulty": "beginner|intermediate|advanced",
  "days": [
    {
      "day": 1,
      "title": "Day 1: ...",
      "mainTask": "one sentence",
      "explanation": "two or three sentences",
      "howTo": ["step", "step", "step"],
      "checklist": ["item", "item"],
      "tips": ["tip", "tip"],
      "mistakesToAvoid": ["mistake", "mistake"],
      "estimatedTime": "%s",
      "skillLevel": "Beginner|Intermediate|Advanced"
    }
  ]
}
The days array must have exactly 7 entries.`

type llmDay struct {
	Day             int      `json:"day"`
	Title           string   `json:"title"`
	MainTask        string   `json:"mainTask"`
	Explanation     string   `json:"explanation"`
	HowTo           []string `json:"howTo"`
	Checklist       []string `json:"checklist"`
	Tips            []string `json:"tips"`
	MistakesToAvoid []string `json:"mistakesToAvoid"`
	EstimatedTime   string   `json:"estimatedTime"`
	SkillLevel      string   `json:"skillLevel"`
}

type llmPlan struct {
	Title      string   `json:"title"`
	Overview   string   `json:"overview"`
	Difficulty string   `json:"difficulty"`
	Days       []llmDay `json:"days"`
}

func buildPrompt(req models.PlanRequest) string {
	goal := req.Goal
	if goal == "" {
		goal = "have fun and build a habit"
	}
	return fmt.Sprintf(planPrompt, req.Hobby, req.Experience, req.TimeAvailable, goal, estimatedTime(req.TimeAvailable))
}

// llmGenerate asks the model for a plan and merges it over the template, so
// any field the model leaves out keeps its template value.
func llmGenerate(ctx context.Context, llm ai.Completer, req models.PlanRequest) (*models.Plan, error) {
	response, err := llm.Complete(ctx, buildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%s completion: %w", llm.Name(), err)
	}

	var parsed llmPlan
	if err := ai.DecodeJSON(response, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Days) == 0 {
		return nil, errNoDays
	}

	plan := templatePlan(req)
	plan.GeneratedBy = "ai:" + llm.Name()
	plan.Title = orDefault(parsed.Title, plan.Title)
	plan.Overview = orDefault(parsed.Overview, plan.Overview)
	if d := strings.ToLower(strings.TrimSpace(parsed.Difficulty)); d == "beginner" || d == "intermediate" || d == "advanced" {
		plan.Difficulty = d
	}

	for i := range plan.Days {
		if i < len(parsed.Days) {
			mergeDay(&plan.Days[i], parsed.Days[i])
		}
	}
	return plan, nil
}

// mergeDay copies usable model fields onto the template day. The day number
// always comes from the position in the plan.
func mergeDay(dst *models.Day, src llmDay) {
	dst.Title = orDefault(src.Title, dst.Title)
	dst.MainTask = orDefault(src.MainTask, dst.MainTask)
	dst.Explanation = orDefault(src.Explanation, dst.Explanation)
	dst.HowTo = listOrDefault(src.HowTo, dst.HowTo)
	dst.Checklist = listOrDefault(src.Checklist, dst.Checklist)
	dst.Tips = listOrDefault(src.Tips, dst.Tips)
	dst.MistakesToAvoid = listOrDefault(src.MistakesToAvoid, dst.MistakesToAvoid)
	dst.EstimatedTime = orDefault(src.EstimatedTime, dst.EstimatedTime)
	for _, level := range skillLevels {
		if strings.EqualFold(strings.TrimSpace(src.SkillLevel), level) {
			dst.SkillLevel = level
		}
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func listOrDefault(values, fallback []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
