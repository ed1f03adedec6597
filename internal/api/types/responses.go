package types

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// OKCount wraps a list in a success envelope with its length.
func OKCount(count int, data interface{}) APIResponse {
	return APIResponse{Success: true, Count: &count, Data: data}
}

// Fail wraps a user-facing message in a failure envelope.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
