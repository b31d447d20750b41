package models

import (
	"encoding/json"
	"time"
)

// PlanDays is the fixed length of every generated plan.
const PlanDays = 7

type AffiliateLink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Price string `json:"price,omitempty"`
}

type FreeResource struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type Day struct {
	Day               int             `json:"day"`
	Title             string          `json:"title"`
	MainTask          string          `json:"mainTask"`
	Explanation       string          `json:"explanation"`
	HowTo             []string        `json:"howTo"`
	Checklist         []string        `json:"checklist"`
	Tips              []string        `json:"tips"`
	MistakesToAvoid   []string        `json:"mistakesToAvoid"`
	FreeResources     []FreeResource  `json:"freeResources"`
	AffiliateProducts []AffiliateLink `json:"affiliateProducts"`
	YouTubeVideoID    string          `json:"youtubeVideoId"`
	VideoTitle        string          `json:"videoTitle"`
	EstimatedTime     string          `json:"estimatedTime"`
	SkillLevel        string          `json:"skillLevel"`
}

type Plan struct {
	Hobby       string `json:"hobby"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	Difficulty  string `json:"difficulty"`
	TotalDays   int    `json:"totalDays"`
	Days        []Day  `json:"days"`
	GeneratedBy string `json:"generatedBy"`
}

// PlanRequest is the input to plan generation.
type PlanRequest struct {
	Hobby         string `json:"hobby"`
	Experience    string `json:"experience"`
	TimeAvailable string `json:"timeAvailable"`
	Goal          string `json:"goal,omitempty"`
}

// StoredPlan is a plan persisted for a user. PlanData is kept verbatim.
type StoredPlan struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Hobby     string          `json:"hobby"`
	Title     string          `json:"title"`
	PlanData  json.RawMessage `json:"planData"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Progress tracks how far a user is through a stored plan.
type Progress struct {
	UserID        string    `json:"userId"`
	PlanID        string    `json:"planId"`
	CompletedDays []int     `json:"completedDays"`
	CurrentDay    int       `json:"currentDay"`
	UnlockedDays  []int     `json:"unlockedDays"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
