package twilio

// messageResponse ответ Twilio Messages API
type messageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
