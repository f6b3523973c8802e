package expopush

// Message push-уведомление в формате Expo Push API
type Message struct {
	To    string `json:"to"`
	Sound string `json:"sound"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Ticket квитанция Expo о приеме уведомления
type Ticket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// response обертка ответа Expo Push API
type response struct {
	Data []Ticket `json:"data"`
}
