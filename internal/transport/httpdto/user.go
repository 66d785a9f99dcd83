package httpdto

import "courier/internal/domain/user"

type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func NewUserSummary(u user.User) UserSummary {
	return UserSummary{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}
