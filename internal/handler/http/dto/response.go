package dto

// Envelope is the success body of every endpoint.
type Envelope struct {
	Status  string      `json:"status"`
	Token   string      `json:"token,omitempty"`
	Results *int        `json:"results,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success wraps data in the success envelope.
func Success(data interface{}) Envelope {
	return Envelope{Status: "success", Data: data}
}

// SuccessList wraps a listing and its size.
func SuccessList(n int, data interface{}) Envelope {
	return Envelope{Status: "success", Results: &n, Data: data}
}

// SuccessMessage is a success envelope carrying only a message.
func SuccessMessage(message string) Envelope {
	return Envelope{Status: "success", Message: message}
}
