// Package validation registers the custom binding validators used by request
// structs across the handlers.
package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// Register installs the custom validators on gin's binding engine. Call once
// at startup before the router handles requests.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("workflowtype", validWorkflowType); err != nil {
		return err
	}
	if err := v.RegisterValidation("taskpriority", validPriority); err != nil {
		return err
	}
	return v.RegisterValidation("userrole", validRole)
}

func validWorkflowType(fl validator.FieldLevel) bool {
	switch workflow.Type(fl.Field().String()) {
	case workflow.TypeSales, workflow.TypeProcurement:
		return true
	}
	return false
}

func validPriority(fl validator.FieldLevel) bool {
	switch models.Priority(fl.Field().String()) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return true
	}
	return false
}

func validRole(fl validator.FieldLevel) bool {
	switch models.Role(fl.Field().String()) {
	case models.RoleSales, models.RoleProcurement, models.RoleQuality, models.RoleAdmin:
		return true
	}
	return false
}
