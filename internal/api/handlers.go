package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/internal/planner"
)

type validateRequest struct {
	Hobby string `json:"hobby"`
}

func (s *Server) validateHobby(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Hobby) == "" {
		respondError(c, s.log, badRequest("hobby is required"))
		return
	}
	c.JSON(http.StatusOK, s.deps.Validator.Validate(c.Request.Context(), req.Hobby))
}

func (s *Server) generatePlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.log, badRequest("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Hobby) == "" || strings.TrimSpace(req.Experience) == "" || strings.TrimSpace(req.TimeAvailable) == "" {
		respondError(c, s.log, badRequest("hobby, experience and timeAvailable are required"))
		return
	}

	ctx := c.Request.Context()
	verdict := s.deps.Validator.Validate(ctx, req.Hobby)
	if !verdict.IsValid {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":       verdict.Reasoning,
			"code":        "invalid_hobby",
			"suggestions": verdict.Suggestions,
		})
		return
	}
	if verdict.CorrectedHobby != "" {
		req.Hobby = verdict.CorrectedHobby
	}

	plan, err := s.deps.Planner.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidRequest) {
			err = badRequest(err.Error())
		}
		respondError(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type savePlanRequest struct {
	UserID   string          `json:"userId"`
	Hobby    string          `json:"hobby"`
	Title    string          `json:"title"`
	PlanData json.RawMessage `json:"planData"`
}

func (s *Server) savePlan(c *gin.Context) {
	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.log, badRequest("invalid JSON body"))
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.Hobby) == "" || len(req.PlanData) == 0 || string(req.PlanData) == "null" {
		respondError(c, s.log, badRequest("userId, hobby and planData are required"))
		return
	}
	if err := authorize(c, req.UserID); err != nil {
		respondError(c, s.log, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("%s 7-day plan", req.Hobby)
	}
	plan := &models.StoredPlan{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Hobby:     strings.TrimSpace(req.Hobby),
		Title:     title,
		PlanData:  req.PlanData,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.deps.Plans.SavePlan(c.Request.Context(), plan); err != nil {
		respondError(c, s.log, fmt.Errorf("save plan: %w", err))
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (s *Server) listPlans(c *gin.Context) {
	userID := c.Param("userId")
	if err := authorize(c, userID); err != nil {
		respondError(c, s.log, err)
		return
	}
	plans, err := s.deps.Plans.ListPlans(c.Request.Context(), userID)
	if err != nil {
		respondError(c, s.log, fmt.Errorf("list plans: %w", err))
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (s *Server) getPlan(c *gin.Context) {
	userID := c.Param("userId")
	if err := authorize(c, userID); err != nil {
		respondError(c, s.log, err)
		return
	}
	plan, err := s.deps.Plans.GetPlan(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		respondError(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) deletePlan(c *gin.Context) {
	userID := c.Param("userId")
	if err := authorize(c, userID); err != nil {
		respondError(c, s.log, err)
		return
	}
	if err := s.deps.Plans.DeletePlan(c.Request.Context(), userID, c.Param("planId")); err != nil {
		respondError(c, s.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) saveProgress(c *gin.Context) {
	var progress models.Progress
	if err := c.ShouldBindJSON(&progress); err != nil {
		respondError(c, s.log, badRequest("invalid JSON body"))
		return
	}
	if progress.UserID == "" || progress.PlanID == "" {
		respondError(c, s.log, badRequest("userId and planId are required"))
		return
	}
	if err := authorize(c, progress.UserID); err != nil {
		respondError(c, s.log, err)
		return
	}
	if err := normalizeProgress(&progress); err != nil {
		respondError(c, s.log, err)
		return
	}

	if err := s.deps.Progress.SaveProgress(c.Request.Context(), &progress); err != nil {
		respondError(c, s.log, fmt.Errorf("save progress: %w", err))
		return
	}
	c.JSON(http.StatusOK, progress)
}

// normalizeProgress checks day numbers, defaults the current day and keeps
// every completed day and the current day unlocked.
func normalizeProgress(p *models.Progress) error {
	inRange := func(d int) bool { return d >= 1 && d <= models.PlanDays }

	if p.CurrentDay == 0 {
		p.CurrentDay = 1
	}
	if !inRange(p.CurrentDay) {
		return badRequest(fmt.Sprintf("currentDay must be between 1 and %d", models.PlanDays))
	}
	for _, d := range append(slices.Clone(p.CompletedDays), p.UnlockedDays...) {
		if !inRange(d) {
			return badRequest(fmt.Sprintf("day %d is outside 1..%d", d, models.PlanDays))
		}
	}

	unlocked := append(slices.Clone(p.UnlockedDays), p.CompletedDays...)
	unlocked = append(unlocked, p.CurrentDay)
	slices.Sort(unlocked)
	p.UnlockedDays = slices.Compact(unlocked)

	completed := slices.Clone(p.CompletedDays)
	if completed == nil {
		completed = []int{}
	}
	slices.Sort(completed)
	p.CompletedDays = slices.Compact(completed)

	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Server) listProgress(c *gin.Context) {
	userID := c.Param("userId")
	if err := authorize(c, userID); err != nil {
		respondError(c, s.log, err)
		return
	}
	progress, err := s.deps.Progress.ListProgress(c.Request.Context(), userID)
	if err != nil {
		respondError(c, s.log, fmt.Errorf("list progress: %w", err))
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (s *Server) getProgress(c *gin.Context) {
	userID := c.Param("userId")
	if err := authorize(c, userID); err != nil {
		respondError(c, s.log, err)
		return
	}
	progress, err := s.deps.Progress.GetProgress(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		respondError(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
