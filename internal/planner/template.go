package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
)

type dayTemplate struct {
	title       string
	focus       string
	task        string
	explanation string
	howTo       []string
	checklist   []string
	tips        []string
	mistakes    []string
}

// dayTemplates is the fixed outline every plan follows, one entry per day.
var dayTemplates = [models.PlanDays]dayTemplate{
	{
		title:       "Basics",
		focus:       "getting set up",
		task:        "Set up your space and learn the core vocabulary of %s",
		explanation: "Day one is about removing friction. Get your tools ready, learn the words you will keep hearing, and try %s for the first time without pressure.",
		howTo:       []string{"Gather the essential gear", "Watch the day's tutorial start to finish", "Try the first exercise slowly", "Write down three things you noticed"},
		checklist:   []string{"Workspace ready", "Tutorial watched", "First attempt done"},
		tips:        []string{"Keep the session short and enjoyable", "Take a photo or note of where you started"},
		mistakes:    []string{"Buying expensive gear before you know what you need", "Trying to learn everything on day one"},
	},
	{
		title:       "Fundamentals",
		focus:       "fundamental techniques",
		task:        "Practice the fundamental techniques of %s",
		explanation: "Fundamentals carry everything else. Repeat the basic movements of %s until they start to feel familiar.",
		howTo:       []string{"Review yesterday's notes", "Follow along with the tutorial", "Repeat each fundamental five times", "Slow down wherever it feels awkward"},
		checklist:   []string{"Fundamentals practiced", "Notes updated"},
		tips:        []string{"Accuracy first, speed later", "Short focused repetitions beat long sloppy ones"},
		mistakes:    []string{"Skipping the basics to get to the fun part", "Practicing mistakes at full speed"},
	},
	{
		title:       "Core techniques",
		focus:       "core techniques",
		task:        "Learn the core techniques most %s projects rely on",
		explanation: "With the fundamentals in place, add the techniques you will use in almost every %s session.",
		howTo:       []string{"Pick two core techniques from the tutorial", "Practice each one in isolation", "Combine them in a short exercise"},
		checklist:   []string{"Two techniques learned", "Combined exercise done"},
		tips:        []string{"Record yourself to spot problems", "Stop before you get frustrated"},
		mistakes:    []string{"Learning too many techniques at once"},
	},
	{
		title:       "Practice",
		focus:       "deliberate practice",
		task:        "Run a focused practice session of %s",
		explanation: "Today is about deliberate practice. Choose your weakest area from the first three days of %s and give it your full attention.",
		howTo:       []string{"Identify your weakest skill so far", "Set a timer and practice only that skill", "Compare with day one"},
		checklist:   []string{"Weak spot identified", "Timed practice completed", "Progress compared"},
		tips:        []string{"Celebrate small improvements", "Rest is part of practice"},
		mistakes:    []string{"Only practicing what you are already good at"},
	},
	{
		title:       "Intermediate skills",
		focus:       "intermediate skills",
		task:        "Stretch into an intermediate %s skill",
		explanation: "Push slightly beyond your comfort zone with a skill that builds on what you learned this week of %s.",
		howTo:       []string{"Watch the intermediate tutorial", "Break the new skill into small steps", "Practice each step, then the whole"},
		checklist:   []string{"New skill attempted", "Steps broken down"},
		tips:        []string{"Expect it to feel hard at first", "Use slow motion or pauses when following videos"},
		mistakes:    []string{"Giving up after the first failed attempt"},
	},
	{
		title:       "Projects",
		focus:       "a small project",
		task:        "Complete a small %s project from start to finish",
		explanation: "Put everything together in a small, finishable %s project. Finishing matters more than perfection.",
		howTo:       []string{"Choose a project you can finish today", "Plan the steps", "Work through it", "Share it with someone"},
		checklist:   []string{"Project chosen", "Project finished", "Result shared or saved"},
		tips:        []string{"Pick a project slightly below your limit", "Save your work to look back on"},
		mistakes:    []string{"Choosing a project that is too ambitious"},
	},
	{
		title:       "Review & next steps",
		focus:       "review and next steps",
		task:        "Review your week of %s and plan what comes next",
		explanation: "Look back at how far you have come in %s and set up the habits that will keep you going after this plan.",
		howTo:       []string{"Repeat the day one exercise and compare", "List what you enjoyed most", "Choose your next learning goal", "Schedule your next three sessions"},
		checklist:   []string{"Progress reviewed", "Next goal chosen", "Sessions scheduled"},
		tips:        []string{"Join a community to stay motivated", "Keep sessions regular rather than long"},
		mistakes:    []string{"Stopping completely once the plan ends"},
	},
}

var skillLevels = []string{"Beginner", "Intermediate", "Advanced"}

func experienceLevel(experience string) int {
	switch strings.ToLower(strings.TrimSpace(experience)) {
	case "intermediate", "some":
		return 1
	case "advanced", "expert":
		return 2
	default:
		return 0
	}
}

func difficulty(experience string) string {
	return strings.ToLower(skillLevels[experienceLevel(experience)])
}

func skillLevel(experience string, day int) string {
	level := experienceLevel(experience)
	if day >= 5 && level < len(skillLevels)-1 {
		level++
	}
	return skillLevels[level]
}

var timePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-\s*\d+(?:\.\d+)?\s*)?(min|minute|minutes|h|hr|hrs|hour|hours)\b`)

// parseMinutes reads the first amount of time in s ("30 minutes", "1-2 hours").
// Unparseable input is 0.
func parseMinutes(s string) int {
	m := timePattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(m[2], "h") {
		n *= 60
	}
	return int(n)
}

func estimatedTime(timeAvailable string) string {
	if t := strings.TrimSpace(timeAvailable); t != "" {
		return t
	}
	return "30-60 minutes"
}

// templateDay builds the deterministic content for day (1-based).
func templateDay(req models.PlanRequest, day int) models.Day {
	tpl := dayTemplates[(day-1)%len(dayTemplates)]
	hobby := req.Hobby

	tips := append([]string(nil), tpl.tips...)
	switch minutes := parseMinutes(req.TimeAvailable); {
	case minutes > 0 && minutes <= 30:
		tips = append(tips, "Short on time? Focus on a single exercise and repeat it.")
	case minutes >= 120:
		tips = append(tips, "Take a 10-minute break every hour to stay fresh.")
	}
	if experienceLevel(req.Experience) > 0 {
		tips = append(tips, fmt.Sprintf("Skim the parts you already know and spend the time on %s.", tpl.focus))
	}
	if req.Goal != "" {
		tips = append(tips, fmt.Sprintf("Keep your goal in mind: %s.", req.Goal))
	}

	return models.Day{
		Day:             day,
		Title:           fmt.Sprintf("Day %d: %s", day, tpl.title),
		MainTask:        fmt.Sprintf(tpl.task, hobby),
		Explanation:     fmt.Sprintf(tpl.explanation, hobby),
		HowTo:           append([]string(nil), tpl.howTo...),
		Checklist:       append([]string(nil), tpl.checklist...),
		Tips:            tips,
		MistakesToAvoid: append([]string(nil), tpl.mistakes...),
		EstimatedTime:   estimatedTime(req.TimeAvailable),
		SkillLevel:      skillLevel(req.Experience, day),
	}
}

// templatePlan is the deterministic plan used without an LLM or when the LLM
// answer cannot be used.
func templatePlan(req models.PlanRequest) *models.Plan {
	plan := &models.Plan{
		Hobby:       req.Hobby,
		Title:       fmt.Sprintf("Learn %s in 7 Days", titleCase(req.Hobby)),
		Overview:    fmt.Sprintf("A 7-day %s plan for a %s learner with %s a day.", req.Hobby, difficulty(req.Experience), estimatedTime(req.TimeAvailable)),
		Difficulty:  difficulty(req.Experience),
		TotalDays:   models.PlanDays,
		GeneratedBy: "template",
	}
	for day := 1; day <= models.PlanDays; day++ {
		plan.Days = append(plan.Days, templateDay(req, day))
	}
	return plan
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
