package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      user.UpdatedAt.Format(time.RFC3339),
	}
}

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserItem(user))
	}
	return items
}

func ToAuthResponse(result domain.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{AccessToken: result.AccessToken, User: ToUserItem(result.User)}
}

func ToOrganizationItem(org domain.Organization) dto.OrganizationItem {
	item := dto.OrganizationItem{
		ID:        org.ID,
		Name:      org.Name,
		CreatedAt: org.CreatedAt.Format(time.RFC3339),
		UpdatedAt: org.UpdatedAt.Format(time.RFC3339),
	}
	if org.ParentID != nil {
		value := *org.ParentID
		item.ParentID = &value
	}
	for _, child := range org.Children {
		item.Children = append(item.Children, ToOrganizationItem(child))
	}
	return item
}
