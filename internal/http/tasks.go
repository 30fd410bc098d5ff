package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordgroups/internal/tasks"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue TaskQueue
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// TaskTypeInfo describes a task type that can be triggered by hand.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        "cleanup_orphan_tags",
			Description: "Delete tags that no word group uses",
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTask handles POST /api/tasks/run/:type
// Word group imports are enqueued through POST /api/wordgroups/bulk?async=true instead.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var task backlite.Task
	switch taskType {
	case "cleanup_orphan_tags":
		task = tasks.CleanupOrphanTagsTask{Trigger: tasks.TriggerManual}
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	taskID, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"type":    taskType,
		"message": "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
