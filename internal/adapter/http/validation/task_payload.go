package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput rejects explicit nulls on enum fields; omitted fields
// fall back to their defaults in the service.
func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	for _, field := range []string{"status", "priority", "category"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		DueDate:     dueDate,
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		input.Status = &value
	}
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		input.Priority = &value
	}
	if req.Category != nil {
		value := domain.TaskCategory(*req.Category)
		input.Category = &value
	}
	return input, nil
}

// BuildUpdateTaskInput tells an absent description or due_date apart from an
// explicit null, which clears the field.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	for _, field := range []string{"title", "status", "priority", "category"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	var title *string
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title = &value
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	dueDateSet := hasJSONField(raw, "due_date")
	var dueDate *time.Time
	if dueDateSet && !isJSONNull(raw["due_date"]) {
		if req.DueDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := parseDueDate(req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		dueDate = parsed
	}

	input := domain.UpdateTaskInput{
		Title:          title,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
		DueDate:        dueDate,
		DueDateSet:     dueDateSet,
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		input.Status = &value
	}
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		input.Priority = &value
	}
	if req.Category != nil {
		value := domain.TaskCategory(*req.Category)
		input.Category = &value
	}
	return input, nil
}

func BuildReorderTaskInput(req dto.ReorderTaskRequest) (domain.ReorderTaskInput, error) {
	if req.Order == nil {
		return domain.ReorderTaskInput{}, ErrInvalidTaskPayload
	}
	status := domain.TaskStatus(req.Status)
	if !status.Valid() {
		return domain.ReorderTaskInput{}, ErrInvalidTaskPayload
	}
	return domain.ReorderTaskInput{Order: *req.Order, Status: status}, nil
}

func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, ErrInvalidTaskPayload
	}
	return &parsed, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "category") ||
		hasJSONField(raw, "due_date")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
