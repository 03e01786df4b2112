package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		Title:          task.Title,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		Category:       string(task.Category),
		Order:          task.Order,
		OwnerID:        task.OwnerID,
		OrganizationID: task.OrganizationID,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(time.DateOnly)
		item.DueDate = &value
	}

	return item
}
