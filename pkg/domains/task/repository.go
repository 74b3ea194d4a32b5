package task

import (
	"context"

	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/entities"
	"gorm.io/gorm"
)

// Sort keys accepted by List.
const (
	SortCreatedAt = "createdAt"
	SortTitle     = "title"
	SortStatus    = "status"
	SortPriority  = "priority"
	SortDueDate   = "dueDate"
)

var sortOrders = map[string]string{
	SortCreatedAt: "created_at DESC",
	SortTitle:     "title ASC",
	SortStatus:    "status ASC",
	SortPriority:  "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END",
	SortDueDate:   "due_date IS NULL, due_date ASC",
}

// Every query is scoped by owner; a task belonging to someone else is indistinguishable
// from a missing one.
type Repository interface {
	Create(ctx context.Context, task *entities.Task) error
	FindByID(ctx context.Context, id string, userID uint) (entities.Task, error)
	Update(ctx context.Context, id string, userID uint, fields map[string]any) (entities.Task, error)
	List(ctx context.Context, userID uint, status entities.TaskStatus, sort string) ([]entities.Task, error)
	Delete(ctx context.Context, id string, userID uint) (entities.Task, error)
	CountByStatus(ctx context.Context, userID uint) ([]dtos.StatusCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Create(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Omit("User").Create(task).Error
}

func (r *repository) FindByID(ctx context.Context, id string, userID uint) (entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	return task, err
}

func (r *repository) Update(ctx context.Context, id string, userID uint, fields map[string]any) (entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&entities.Task{}).Where("id = ? AND user_id = ?", id, userID).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	})
	return task, err
}

// List returns the owner's tasks with the given status, or all of them when status is empty.
func (r *repository) List(ctx context.Context, userID uint, status entities.TaskStatus, sort string) ([]entities.Task, error) {
	order, ok := sortOrders[sort]
	if !ok {
		order = sortOrders[SortCreatedAt]
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	tasks := []entities.Task{}
	err := query.Order(order).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *repository) Delete(ctx context.Context, id string, userID uint) (entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Task{}).Error
	})
	return task, err
}

func (r *repository) CountByStatus(ctx context.Context, userID uint) ([]dtos.StatusCount, error) {
	counts := []dtos.StatusCount{}
	err := r.db.WithContext(ctx).Model(&entities.Task{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Order("status").
		Scan(&counts).Error
	return counts, err
}
