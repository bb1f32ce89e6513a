package dto

import (
	"strings"
	"time"

	uModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs (admin user management)
   ======================================================= */

// AdminUserUpdateRequest — partial update (pointers distinguish omit vs null)
type AdminUserUpdateRequest struct {
	FullName       *string `json:"full_name,omitempty" validate:"omitempty,min=3,max=200"`
	Gender         *string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Age            *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Country        *string `json:"country,omitempty" validate:"omitempty,max=100"`
	ReferralSource *string `json:"referral_source,omitempty"`
	Status         *string `json:"status,omitempty" validate:"omitempty,oneof=pending active rejected withdrawn"`
	CircleID       *uint   `json:"circle_id,omitempty"`
}

func (r *AdminUserUpdateRequest) Normalize() {
	trim := func(p *string) {
		if p != nil {
			v := strings.TrimSpace(*p)
			*p = v
		}
	}
	trim(r.FullName)
	trim(r.Phone)
	trim(r.Country)
	trim(r.ReferralSource)
}

// ApplyToModel writes the present fields onto an existing row.
func (r *AdminUserUpdateRequest) ApplyToModel(m *uModel.UserModel) {
	if r.FullName != nil {
		m.FullName = *r.FullName
	}
	if r.Gender != nil {
		m.Gender = *r.Gender
	}
	if r.Age != nil {
		m.Age = *r.Age
	}
	if r.Phone != nil {
		m.Phone = *r.Phone
	}
	if r.Country != nil {
		m.Country = *r.Country
	}
	if r.ReferralSource != nil {
		m.ReferralSource = *r.ReferralSource
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.CircleID != nil {
		m.CircleID = r.CircleID
	}
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=participant supervisor super_admin"`
}

type AssignCircleRequest struct {
	CircleID *uint `json:"circle_id"`
}

type RejectRegistrationRequest struct {
	Note string `json:"note"`
}

type AdminResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type BulkUserIDsRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1"`
}

type BulkRejectRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1"`
	Note    string `json:"note"`
}

type BulkAssignCircleRequest struct {
	UserIDs  []uint `json:"user_ids" validate:"required,min=1"`
	CircleID *uint  `json:"circle_id"`
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

// UserContext carries relation facts the user row itself does not hold.
type UserContext struct {
	CircleName           string
	SupervisorName       string
	SupervisorPhone      string
	SupervisedCircleName string
}

type UserResponse struct {
	ID             uint    `json:"id"`
	MemberID       *int    `json:"member_id"`
	FullName       string  `json:"full_name"`
	Gender         string  `json:"gender"`
	Age            int     `json:"age"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Country        string  `json:"country"`
	ReferralSource string  `json:"referral_source"`
	Status         string  `json:"status"`
	Role           string  `json:"role"`
	RejectionNote  *string `json:"rejection_note"`
	CircleID       *uint   `json:"circle_id"`
	CircleName     *string `json:"circle_name"`

	SupervisorName       string `json:"supervisor_name,omitempty"`
	SupervisorPhone      string `json:"supervisor_phone,omitempty"`
	SupervisedCircleName string `json:"supervised_circle_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u uModel.UserModel, ctx *UserContext) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		MemberID:       u.MemberID,
		FullName:       u.FullName,
		Gender:         u.Gender,
		Age:            u.Age,
		Phone:          u.Phone,
		Email:          u.Email,
		Country:        u.Country,
		ReferralSource: u.ReferralSource,
		Status:         u.Status,
		Role:           u.Role,
		RejectionNote:  u.RejectionNote,
		CircleID:       u.CircleID,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if ctx != nil {
		if ctx.CircleName != "" {
			resp.CircleName = &ctx.CircleName
		}
		resp.SupervisorName = ctx.SupervisorName
		resp.SupervisorPhone = ctx.SupervisorPhone
		resp.SupervisedCircleName = ctx.SupervisedCircleName
	}
	return resp
}
