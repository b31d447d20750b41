package planner

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/internal/videos"
)

type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubLLM) Name() string { return "stub" }

type stubVideos struct{ calls []int }

func (s *stubVideos) VideoFor(_ context.Context, hobby string, day int) videos.Choice {
	s.calls = append(s.calls, day)
	return videos.Choice{VideoID: "vid" + string(rune('0'+day)), Title: hobby, Source: "search"}
}

var cookingRequest = models.PlanRequest{Hobby: "cooking", Experience: "beginner", TimeAvailable: "30 minutes"}

func assertCompletePlan(t *testing.T, plan *models.Plan) {
	t.Helper()
	if plan.TotalDays != models.PlanDays || len(plan.Days) != models.PlanDays {
		t.Fatalf("plan has totalDays=%d len(days)=%d, want 7", plan.TotalDays, len(plan.Days))
	}
	for i, day := range plan.Days {
		if day.Day != i+1 {
			t.Errorf("days[%d].Day = %d", i, day.Day)
		}
		if day.YouTubeVideoID == "" {
			t.Errorf("day %d has no video", day.Day)
		}
		if day.Title == "" || day.MainTask == "" || len(day.HowTo) == 0 || len(day.Checklist) == 0 {
			t.Errorf("day %d missing content: %+v", day.Day, day)
		}
		if len(day.AffiliateProducts) == 0 || len(day.FreeResources) == 0 {
			t.Errorf("day %d missing resources", day.Day)
		}
	}
}

func TestGenerateTemplateWithFallbackVideos(t *testing.T) {
	g := New(Options{AffiliateTag: "wizqohobby-20"})

	plan, err := g.Generate(context.Background(), cookingRequest)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	assertCompletePlan(t, plan)

	if plan.GeneratedBy != "template" {
		t.Errorf("GeneratedBy = %s, want template", plan.GeneratedBy)
	}
	if plan.Days[0].EstimatedTime != "30 minutes" {
		t.Errorf("EstimatedTime = %q", plan.Days[0].EstimatedTime)
	}
	if !strings.Contains(plan.Days[0].Title, "Basics") || !strings.Contains(plan.Days[6].Title, "Review") {
		t.Errorf("day titles do not follow the outline: %q, %q", plan.Days[0].Title, plan.Days[6].Title)
	}
}

func TestGenerateRequiresFields(t *testing.T) {
	g := New(Options{})
	for _, req := range []models.PlanRequest{
		{Experience: "beginner", TimeAvailable: "1 hour"},
		{Hobby: "chess", TimeAvailable: "1 hour"},
		{Hobby: "chess", Experience: "beginner"},
	} {
		if _, err := g.Generate(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Generate(%+v) error = %v, want ErrInvalidRequest", req, err)
		}
	}
}

func TestGenerateWithLLMDefaultsMissingFields(t *testing.T) {
	llm := &stubLLM{response: "```json\n" + `{
		"title": "Cook With Confidence",
		"difficulty": "Beginner",
		"days": [
			{"day": 1, "title": "Day 1: Knife skills", "mainTask": "Learn to dice an onion", "howTo": ["Hold the knife", "  "], "skillLevel": "beginner"},
			{"day": 2, "explanation": "Heat control matters."}
		]
	}` + "\n```"}
	vids := &stubVideos{}
	g := New(Options{LLM: llm, Videos: vids})

	plan, err := g.Generate(context.Background(), cookingRequest)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	assertCompletePlan(t, plan)

	if plan.GeneratedBy != "ai:stub" {
		t.Errorf("GeneratedBy = %s, want ai:stub", plan.GeneratedBy)
	}
	if plan.Title != "Cook With Confidence" || plan.Difficulty != "beginner" {
		t.Errorf("title/difficulty = %q/%q", plan.Title, plan.Difficulty)
	}
	if plan.Overview == "" {
		t.Error("missing overview was not defaulted")
	}

	day1 := plan.Days[0]
	if day1.MainTask != "Learn to dice an onion" || len(day1.HowTo) != 1 || day1.SkillLevel != "Beginner" {
		t.Errorf("day 1 not merged: %+v", day1)
	}
	if len(day1.Checklist) == 0 || day1.Explanation == "" {
		t.Error("day 1 missing fields were not defaulted")
	}
	if plan.Days[1].Explanation != "Heat control matters." || !strings.Contains(plan.Days[1].Title, "Fundamentals") {
		t.Errorf("day 2 = %+v", plan.Days[1])
	}
	if len(vids.calls) != models.PlanDays {
		t.Errorf("video lookups = %v, want one per day", vids.calls)
	}
	if !strings.Contains(llm.prompts[0], `"cooking"`) {
		t.Error("prompt does not mention the hobby")
	}
}

func TestGenerateLLMFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		llm  *stubLLM
	}{
		{"Upstream error", &stubLLM{err: errors.New("502")}},
		{"Not JSON", &stubLLM{response: "Sure! Here is your plan."}},
		{"No days", &stubLLM{response: `{"title": "x", "days": []}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(Options{LLM: tt.llm, Videos: &stubVideos{}})
			plan, err := g.Generate(context.Background(), cookingRequest)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			assertCompletePlan(t, plan)
			if plan.GeneratedBy != "template" {
				t.Errorf("GeneratedBy = %s, want template", plan.GeneratedBy)
			}
		})
	}
}

func TestAffiliateLinksCarryTag(t *testing.T) {
	links := affiliateProducts("guitar", 1, "wizqohobby-20")
	if len(links) != len(hobbyGear["guitar"]) {
		t.Fatalf("got %d links, want %d", len(links), len(hobbyGear["guitar"]))
	}
	for _, l := range links {
		u, err := url.Parse(l.Link)
		if err != nil {
			t.Fatalf("bad link %q: %v", l.Link, err)
		}
		if u.Host != "www.amazon.com" || u.Query().Get("tag") != "wizqohobby-20" || u.Query().Get("k") == "" {
			t.Errorf("link %q missing search or tag", l.Link)
		}
	}

	if later := affiliateProducts("underwater basket weaving", 3, ""); len(later) != 1 {
		t.Errorf("day 3 got %d links, want 1", len(later))
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30 minutes", 30},
		{"1 hour", 60},
		{"1-2 hours", 60},
		{"1.5 hrs", 90},
		{"a while", 0},
	}
	for _, tt := range tests {
		if got := parseMinutes(tt.in); got != tt.want {
			t.Errorf("parseMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSkillLevelProgresses(t *testing.T) {
	if got := skillLevel("beginner", 1); got != "Beginner" {
		t.Errorf("beginner day 1 = %s", got)
	}
	if got := skillLevel("beginner", 6); got != "Intermediate" {
		t.Errorf("beginner day 6 = %s", got)
	}
	if got := skillLevel("advanced", 7); got != "Advanced" {
		t.Errorf("advanced day 7 = %s", got)
	}
}

func TestTitleCaseNonASCII(t *testing.T) {
	tests := map[string]string{
		"chess":      "Chess",
		"ōrigami":    "Ōrigami",
		"élan vital": "Élan Vital",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
