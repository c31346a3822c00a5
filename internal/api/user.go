package api

// UserBase 為建立與更新共用的欄位
type UserBase struct {
	Email     string `json:"email" validate:"required,email" example:"alice@example.com"`
	FirstName string `json:"first_name" validate:"required" example:"Alice"`
	LastName  string `json:"last_name" validate:"required" example:"Liddell"`
}

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	UserBase
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	UserBase
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int    `json:"id" example:"1"`
	Email     string `json:"email" example:"alice@example.com"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Liddell"`
}
