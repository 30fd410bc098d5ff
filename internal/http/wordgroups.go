package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordgroups/internal/auth"
	"github.com/mrlokans/wordgroups/internal/entities"
	"github.com/mrlokans/wordgroups/internal/tasks"
)

const defaultPageSize = 20

// BulkRequest is the body of POST /api/wordgroups/bulk.
type BulkRequest struct {
	Groups []entities.WordGroupInput `json:"groups" binding:"required,min=1,dive"`
}

// BulkResponse lists the created ids, or the task id for an async import.
type BulkResponse struct {
	IDs    []uint `json:"ids,omitempty"`
	TaskID string `json:"taskId,omitempty"`
}

type WordGroupsController struct {
	store WordGroupStore
	queue TaskQueue
}

// NewWordGroupsController creates the word group controller. queue may be nil,
// in which case async bulk imports are rejected.
func NewWordGroupsController(store WordGroupStore, queue TaskQueue) *WordGroupsController {
	return &WordGroupsController{store: store, queue: queue}
}

// List returns a window of word groups
// GET /api/wordgroups?offset=0&limit=20 or ?all=true
func (wc *WordGroupsController) List(c *gin.Context) {
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}
	limit, ok := parseIntQuery(c, "limit", defaultPageSize)
	if !ok {
		return
	}

	opts := entities.ListOptions{
		Offset: offset,
		Limit:  limit,
		GetAll: c.Query("all") == "true",
	}

	groups, err := wc.store.GetMultipleWordGroups(c.Request.Context(), opts)
	if err != nil {
		respondStoreError(c, err, "list word groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Pagination reports total groups and full pages for a page size
// GET /api/wordgroups/pagination?limit=20
func (wc *WordGroupsController) Pagination(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", defaultPageSize)
	if !ok {
		return
	}

	info, err := wc.store.Pagination(c.Request.Context(), "word_groups", limit)
	if err != nil {
		respondStoreError(c, err, "word group pagination")
		return
	}
	c.JSON(http.StatusOK, info)
}

// Get returns one word group
// GET /api/wordgroups/:id
func (wc *WordGroupsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := wc.store.GetWordGroupByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get word group")
		return
	}
	if group == nil {
		respondNotFound(c, "No word group found with the given ID")
		return
	}
	c.JSON(http.StatusOK, group)
}

// Create stores a new word group owned by the caller
// POST /api/wordgroups
func (wc *WordGroupsController) Create(c *gin.Context) {
	var input entities.WordGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	id, err := wc.store.CreateWordGroup(c.Request.Context(), input, auth.CallerID(c))
	if err != nil {
		respondStoreError(c, err, "create word group")
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// Bulk stores several word groups in one transaction, or enqueues them with ?async=true
// POST /api/wordgroups/bulk
func (wc *WordGroupsController) Bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if c.Query("async") == "true" {
		if wc.queue == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled"})
			return
		}
		taskID, err := wc.queue.Enqueue(c.Request.Context(), tasks.ImportWordGroupsTask{
			OwnerID: auth.CallerID(c),
			Groups:  req.Groups,
		})
		if err != nil {
			respondInternalError(c, err, "enqueue word group import")
			return
		}
		c.JSON(http.StatusAccepted, BulkResponse{TaskID: taskID})
		return
	}

	ids, err := wc.store.BulkCreateWordGroups(c.Request.Context(), req.Groups, auth.CallerID(c))
	if err != nil {
		respondStoreError(c, err, "bulk create word groups")
		return
	}
	c.JSON(http.StatusCreated, BulkResponse{IDs: ids})
}

// Update replaces a word group. The response carries the group's new id.
// PUT /api/wordgroups/:id
func (wc *WordGroupsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.WordGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	newID, err := wc.store.UpdateWordGroup(c.Request.Context(), id, input, auth.CallerID(c))
	if err != nil {
		respondStoreError(c, err, "update word group")
		return
	}
	c.JSON(http.StatusOK, IDResponse{ID: newID})
}

// Delete removes a word group. Deleting a missing group succeeds.
// DELETE /api/wordgroups/:id
func (wc *WordGroupsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := wc.store.DeleteWordGroup(c.Request.Context(), id, auth.CallerID(c)); err != nil {
		respondStoreError(c, err, "delete word group")
		return
	}
	c.Status(http.StatusNoContent)
}
