package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/goal"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GoalHandler handles wellness goal endpoints
type GoalHandler struct {
	goals  *goal.Service
	logger *logrus.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goals *goal.Service, logger *logrus.Logger) *GoalHandler {
	return &GoalHandler{goals: goals, logger: logger}
}

// CreateGoal handles POST /goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req goal.CreateRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.goals.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Goal created successfully",
		"data":    g,
	})
}

// ListUserGoals handles GET /goals/user/:userId
func (h *GoalHandler) ListUserGoals(c *gin.Context) {
	userID := c.Param("userId")
	if !requireSelf(c, userID) {
		return
	}

	list, err := h.goals.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goals retrieved successfully",
		"data":    list,
	})
}

// UpdateGoal handles PUT /goals/:goalId
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req goal.UpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.goals.Update(c.Request.Context(), userID, c.Param("goalId"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goal updated successfully",
		"data":    g,
	})
}

// DeleteGoal handles DELETE /goals/:goalId
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.goals.Delete(c.Request.Context(), userID, c.Param("goalId")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goal deleted successfully",
	})
}
