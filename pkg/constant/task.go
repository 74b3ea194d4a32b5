package constant

const (
	TASK_NOT_FOUND     = "Task Not Found"
	TASK_CREATED       = "CreateTask"
	TASK_DETAILS       = "GetTask"
	TASK_UPDATED       = "UpdateTask"
	TASK_STATUS_UPDATE = "UpdateTaskStatus"
	TASK_LIST          = "TaskListByStatus"
	TASK_DELETED       = "DeleteTask"
	TASK_COUNT         = "CountTask"
	INVALID_STATUS     = "status must be one of pending, completed, cancelled"
	INVALID_LIST       = "status must be one of pending, completed, cancelled, all"
	INVALID_DUE_DATE   = "dueDate must be between year %d and %d"
	TITLE_REQUIRED     = "title is required"
	DESC_REQUIRED      = "description is required"
	INVALID_PRIORITY   = "priority must be one of low, medium, high"
	INVALID_SORT       = "sort must be one of createdAt, title, status, priority, dueDate"
)
