package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/domains/task"
	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/state"
)

func TaskRoutes(r *gin.RouterGroup, s task.Service, checkAuth gin.HandlerFunc) {
	authGroup := r.Group("", checkAuth)
	{
		authGroup.POST("/CreateTask", createTask(s))
		authGroup.GET("/GetTask/:id", getTask(s))
		authGroup.PUT("/UpdateTask/:id", updateTask(s))
		authGroup.PATCH("/UpdateTaskStatus/:id/:status", updateTaskStatus(s))
		authGroup.GET("/TaskListByStatus/:status", taskListByStatus(s))
		authGroup.DELETE("/DeleteTask/:id", deleteTask(s))
		authGroup.GET("/CountTask", countTask(s))
	}
}

// @Summary Create a task owned by the caller
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dtos.DTOForTaskCreate true "task"
// @Success 200 {object} dtos.Response{Data=entities.Task}
// @Failure 400 {object} dtos.Response
// @Router /CreateTask [post]
func createTask(s task.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.DTOForTaskCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFail(c, err)
			return
		}

		created, err := s.Create(c.Request.Context(), state.CurrentUser(c).ID, req)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.TASK_CREATED, created)
	}
}

// @Summary Read one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "task id"
// @Success 200 {object} dtos.Response{Data=entities.Task}
// @Failure 400 {object} dtos.Response
// @Router /GetTask/{id} [get]
func getTask(s task.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.TaskIDParamDTO
		if err := c.ShouldBindUri(&req); err != nil {
			bindFail(c, err)
			return
		}

		found, err := s.Get(c.Request.Context(), state.CurrentUser(c).ID, req.ID)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.TASK_DETAILS, found)
	}
}

// @Summary Partially update one of the caller's tasks
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "task id"
// @Param body body dtos.DTOForTaskUpdate true "fields to change"
// @Success 200 {object} dtos.Response{Data=entities.Task}
// @Failure 400 {object} dtos.Response
// @Router /UpdateTask/{id} [put]
func updateTask(s task.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var uri dtos.TaskIDParamDTO
		if err := c.ShouldBindUri(&uri); err != nil {
			bindFail(c, err)
			return
		}
		var req dtos.DTOForTaskUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFail(c, err)
			return
		}

		updated, err := s.Update(c.Request.Context(), state.CurrentUser(c).ID, uri.ID, req)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.TASK_UPDATED, updated)
	}
}

// @Summary Move one of the caller's tasks to a new status
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "task id"
// @Param status path string true "pending, completed or cancelled"
// @Success 200 {object} dtos.Response{Data=entities.Task}
// @Failure 400 {object} dtos.Response
// @Router /UpdateTaskStatus/{id}/{status} [patch]
func updateTaskStatus(s task.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.TaskStatusParamDTO
		if err := c.ShouldBindUri(&req); err != nil {
			bindFail(c, err)
			return
		}

		updated, err := s.UpdateStatus(c.Request.Context(), state.CurrentUser(c).ID, req.ID, req.Status)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.TASK_STATUS_UPDATE, updated)
	}
}

// @Summary List the caller's tasks with a status
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status path string true "pending, completed, cancelled or all"
// @Param sort query string false "createdAt, title, status, priority or dueDate"
// @Success 200 {object} dtos.Response{Data=[]entities.Task}
// @Failure 400 {object} dtos.Response
// @Router /TaskListByStatus/{status} [get]
func taskListByStatus(s task.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var uri dtos.TaskListParamDTO
		if err := c.ShouldBindUri(&uri); err != nil {
			bindFail(c, err)
			return
		}
		var query dtos.TaskListQueryDTO
		if err := c.ShouldBindQuery(&query); err != nil {
			bindFail(c, err)
			return
		}

		tasks, err := s.ListByStatus(c.Request.Context(), state.CurrentUser(c).ID, uri.Status, query.Sort)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.TASK_LIST, tasks)
	}
}

// @Summary Delete one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "task id"
// @Success 200 {object} dtos.Response{Data=entities.Task}
// @Failure 400 {object} dtos.Response
// @Router /DeleteTask/{id} [delete]
func deleteTask(s task.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.TaskIDParamDTO
		if err := c.ShouldBindUri(&req); err != nil {
			bindFail(c, err)
			return
		}

		deleted, err := s.Delete(c.Request.Context(), state.CurrentUser(c).ID, req.ID)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.TASK_DELETED, deleted)
	}
}

// @Summary Count the caller's tasks per status
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dtos.Response{Data=[]dtos.StatusCount}
// @Router /CountTask [get]
func countTask(s task.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		counts, err := s.Count(c.Request.Context(), state.CurrentUser(c).ID)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.TASK_COUNT, counts)
	}
}
