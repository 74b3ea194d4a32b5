package dtos

// DTO for user registration
type DTOForUserCreate struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,max=72"`
	FirstName string `json:"firstName" binding:"max=255"`
	LastName  string `json:"lastName" binding:"max=255"`
	Mobile    string `json:"mobile" binding:"max=20"`
}

// DTO for user login
type DTOForUserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// DTO for partial profile updates. Email and password are not updatable here.
type DTOForProfileUpdate struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=255"`
	LastName  *string `json:"lastName" binding:"omitempty,max=255"`
	Mobile    *string `json:"mobile" binding:"omitempty,max=20"`
}

type EmailParamDTO struct {
	Email string `uri:"email" binding:"required,email"`
}

type CodeParamDTO struct {
	Email string `uri:"email" binding:"required,email"`
	Code  string `uri:"code" binding:"required"`
}

type ResetPasswordDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required,max=72"`
}
