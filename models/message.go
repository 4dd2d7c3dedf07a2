package models

type Message struct {
	Sender     string `json:"sender"`
	Ciphertext string `json:"ciphertext"`
	// seconds since epoch, assigned by the server at append time
	Timestamp int64  `json:"timestamp"`
	Room      string `json:"room"`
	// username from the verified token; empty when the auth gate is off
	Author string `json:"author,omitempty"`
}
