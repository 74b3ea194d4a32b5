package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/entities"
	"github.com/taskmanager/pkg/errutil"
)

// StatusAll selects every task regardless of status in ListByStatus.
const StatusAll = "all"

type Service interface {
	Create(ctx context.Context, userID uint, req dtos.DTOForTaskCreate) (entities.Task, error)
	Get(ctx context.Context, userID uint, id string) (entities.Task, error)
	Update(ctx context.Context, userID uint, id string, req dtos.DTOForTaskUpdate) (entities.Task, error)
	UpdateStatus(ctx context.Context, userID uint, id, status string) (entities.Task, error)
	ListByStatus(ctx context.Context, userID uint, status, sort string) ([]entities.Task, error)
	Delete(ctx context.Context, userID uint, id string) (entities.Task, error)
	Count(ctx context.Context, userID uint) ([]dtos.StatusCount, error)
}

type service struct {
	repository Repository
}

func NewService(r Repository) Service {
	return &service{
		repository: r,
	}
}

func (s *service) Create(ctx context.Context, userID uint, req dtos.DTOForTaskCreate) (entities.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return entities.Task{}, errutil.Validation(constant.TITLE_REQUIRED)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return entities.Task{}, errutil.Validation(constant.DESC_REQUIRED)
	}
	status := entities.TaskStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return entities.Task{}, errutil.Validation(constant.INVALID_STATUS)
	}
	priority := entities.TaskPriority(strings.TrimSpace(req.Priority))
	if priority != "" && !priority.Valid() {
		return entities.Task{}, errutil.Validation(constant.INVALID_PRIORITY)
	}
	dueDate := req.DueDate.Ptr()
	if err := checkDueDate(dueDate); err != nil {
		return entities.Task{}, err
	}

	task := entities.Task{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		UserID:      userID,
	}
	if err := s.repository.Create(ctx, &task); err != nil {
		return entities.Task{}, errutil.Internal("create task", err)
	}
	return task, nil
}

func (s *service) Get(ctx context.Context, userID uint, id string) (entities.Task, error) {
	task, err := s.repository.FindByID(ctx, id, userID)
	if err != nil {
		return entities.Task{}, notFoundOr("find task", err)
	}
	return task, nil
}

func (s *service) Update(ctx context.Context, userID uint, id string, req dtos.DTOForTaskUpdate) (entities.Task, error) {
	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return entities.Task{}, errutil.Validation(constant.TITLE_REQUIRED)
		}
		fields["title"] = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return entities.Task{}, errutil.Validation(constant.DESC_REQUIRED)
		}
		fields["description"] = description
	}
	if req.Status != nil {
		status := entities.TaskStatus(strings.TrimSpace(*req.Status))
		if !status.Valid() {
			return entities.Task{}, errutil.Validation(constant.INVALID_STATUS)
		}
		fields["status"] = status
	}
	if req.Priority != nil {
		priority := entities.TaskPriority(strings.TrimSpace(*req.Priority))
		if !priority.Valid() {
			return entities.Task{}, errutil.Validation(constant.INVALID_PRIORITY)
		}
		fields["priority"] = priority
	}
	if req.DueDate.Set {
		dueDate := req.DueDate.Date.Ptr()
		if err := checkDueDate(dueDate); err != nil {
			return entities.Task{}, err
		}
		if dueDate == nil {
			fields["due_date"] = nil
		} else {
			fields["due_date"] = *dueDate
		}
	}

	task, err := s.repository.Update(ctx, id, userID, fields)
	if err != nil {
		return entities.Task{}, notFoundOr("update task", err)
	}
	return task, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID uint, id, status string) (entities.Task, error) {
	next := entities.TaskStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return entities.Task{}, errutil.Validation(constant.INVALID_STATUS)
	}

	task, err := s.repository.Update(ctx, id, userID, map[string]any{"status": next})
	if err != nil {
		return entities.Task{}, notFoundOr("update task status", err)
	}
	return task, nil
}

func (s *service) ListByStatus(ctx context.Context, userID uint, status, sort string) ([]entities.Task, error) {
	var filter entities.TaskStatus
	if status = strings.TrimSpace(status); status != StatusAll {
		filter = entities.TaskStatus(status)
		if !filter.Valid() {
			return nil, errutil.Validation(constant.INVALID_LIST)
		}
	}
	if sort == "" {
		sort = SortCreatedAt
	}
	if _, ok := sortOrders[sort]; !ok {
		return nil, errutil.Validation(constant.INVALID_SORT)
	}

	tasks, err := s.repository.List(ctx, userID, filter, sort)
	if err != nil {
		return nil, errutil.Internal("list tasks", err)
	}
	return tasks, nil
}

func (s *service) Delete(ctx context.Context, userID uint, id string) (entities.Task, error) {
	task, err := s.repository.Delete(ctx, id, userID)
	if err != nil {
		return entities.Task{}, notFoundOr("delete task", err)
	}
	return task, nil
}

func (s *service) Count(ctx context.Context, userID uint) ([]dtos.StatusCount, error) {
	counts, err := s.repository.CountByStatus(ctx, userID)
	if err != nil {
		return nil, errutil.Internal("count tasks", err)
	}
	return counts, nil
}

func checkDueDate(due *time.Time) error {
	if due == nil {
		return nil
	}
	if y := due.Year(); y < entities.MinDueYear || y > entities.MaxDueYear {
		return errutil.Validation(constant.INVALID_DUE_DATE, entities.MinDueYear, entities.MaxDueYear)
	}
	return nil
}

func notFoundOr(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errutil.NotFound(constant.TASK_NOT_FOUND)
	}
	return errutil.Internal(operation, err)
}
