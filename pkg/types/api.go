package types

// ChatMessage is one role-tagged turn of a conversation as sent by clients.
type ChatMessage struct {
	// Role of the author: user, assistant or system.
	// example: user
	Role string `json:"role" example:"user"`
	// Message text.
	// example: Write a haiku about the ocean.
	Content string `json:"content" example:"Write a haiku about the ocean."`
}

// ChatRequest is the payload accepted by POST /chat/.
type ChatRequest struct {
	// Ordered conversation history, oldest first.
	Messages []ChatMessage `json:"messages"`
	// Maximum number of new tokens to generate.
	// example: 256
	MaxTokens int `json:"max_tokens,omitempty" example:"256"`
	// Sampling temperature (higher = more random); 0 is greedy decoding.
	// Omitted uses the server default.
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
	// Nucleus sampling probability.
	// example: 0.9
	TopP *float64 `json:"top_p,omitempty" example:"0.9"`
	// Top-K sampling: limit candidates to top K tokens.
	// example: 40
	TopK int `json:"top_k,omitempty" example:"40"`
	// Optional stop sequences, appended to the chat template's own stop words.
	Stop []string `json:"stop,omitempty"`
	// Random seed for reproducibility; 0 or omitted lets the runtime choose.
	// example: 42
	Seed int64 `json:"seed,omitempty" example:"42"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ModelInfoResponse is returned by GET /chat/model-info.
type ModelInfoResponse struct {
	// example: success
	Status string     `json:"status" example:"success"`
	Data   ModelStats `json:"data"`
}

// HealthResponse is returned by GET /health/.
type HealthResponse struct {
	// Overall API status.
	// example: ok
	Status string `json:"status" example:"ok"`
	// Service version.
	// example: 0.1.0
	Version string `json:"version" example:"0.1.0"`
	// healthy when the model is loaded, unhealthy otherwise.
	// example: healthy
	ModelStatus string     `json:"model_status" example:"healthy"`
	ModelInfo   ModelStats `json:"model_info"`
	SystemInfo  SystemInfo `json:"system_info"`
}

// SystemInfo is a small description of the host process.
type SystemInfo struct {
	System struct {
		// example: linux
		Platform string `json:"platform" example:"linux"`
		// example: amd64
		Arch string `json:"arch" example:"amd64"`
		// example: 8
		CPUCount int `json:"cpu_count" example:"8"`
		// example: go1.24.6
		GoVersion string `json:"go_version" example:"go1.24.6"`
	} `json:"system"`
	// example: 12
	Goroutines int `json:"goroutines" example:"12"`
}
