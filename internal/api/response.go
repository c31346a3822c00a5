package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Detail string `json:"detail" example:"Email already registered"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"User service is running"`
}
