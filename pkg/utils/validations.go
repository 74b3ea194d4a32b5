package utils

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/taskmanager/pkg/entities"
)

type CustomValidator struct {
	Validator *validator.Validate
}

// RegisterBindingValidations installs the custom tags on gin's binding validator so that
// ShouldBindJSON / ShouldBindUri enforce them.
func RegisterBindingValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		(&CustomValidator{v}).ValidatorRegistery()
	}
}

func (c *CustomValidator) ValidatorRegistery() {
	c.Validator.RegisterValidation("taskstatus", c.IsTaskStatus)
	c.Validator.RegisterValidation("taskpriority", c.IsTaskPriority)
}

func (c *CustomValidator) IsTaskStatus(fl validator.FieldLevel) bool {
	return entities.TaskStatus(strings.TrimSpace(fl.Field().String())).Valid()
}

func (c *CustomValidator) IsTaskPriority(fl validator.FieldLevel) bool {
	return entities.TaskPriority(strings.TrimSpace(fl.Field().String())).Valid()
}
