package dto

import (
	"strings"
	"time"

	circleModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/model"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
)

type CreateCircleRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	SupervisorID *uint  `json:"supervisor_id"`
}

func (r *CreateCircleRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type UpdateCircleRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=200"`
	SupervisorID *uint   `json:"supervisor_id,omitempty"`
}

type AssignMembersRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1"`
}

type CircleResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	SupervisorID   *uint     `json:"supervisor_id"`
	SupervisorName *string   `json:"supervisor_name"`
	MemberCount    int       `json:"member_count"`
	MaleCount      int       `json:"male_count"`
	FemaleCount    int       `json:"female_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewCircleResponse counts only active members, matching the admin screens.
func NewCircleResponse(c circleModel.CircleModel, supervisorName string, members []userModel.UserModel) CircleResponse {
	resp := CircleResponse{
		ID:           c.ID,
		Name:         c.Name,
		SupervisorID: c.SupervisorID,
		CreatedAt:    c.CreatedAt,
	}
	if supervisorName != "" {
		resp.SupervisorName = &supervisorName
	}
	for _, m := range members {
		if !m.IsActive() {
			continue
		}
		resp.MemberCount++
		if m.Gender == "male" {
			resp.MaleCount++
		} else {
			resp.FemaleCount++
		}
	}
	return resp
}
