package api

import (
	"time"

	"task-manager/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type taskRequest struct {
	Title string `json:"title"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

type taskResponse struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	UserID      uint         `json:"user_id"`
	User        userResponse `json:"user"`
	IsDone      bool         `json:"is_done"`
	CreatedDate time.Time    `json:"created_date"`
	UpdatedDate *time.Time   `json:"updated_date"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
	}
}

// newTaskResponse renders a task owned by owner. Callers only pass tasks already scoped to owner.
func newTaskResponse(t *model.Task, owner *model.User) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		UserID:      t.UserID,
		User:        newUserResponse(owner),
		IsDone:      t.IsDone,
		CreatedDate: t.CreatedDate,
		UpdatedDate: t.UpdatedDate,
	}
}
